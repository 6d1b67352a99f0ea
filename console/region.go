package console

import (
	"github.com/lixenwraith/tconsole/layout"
)

// Layout draws markup text inside r and restores the cursor afterwards.
// Returns false if some character did not fit; an invalid region draws nothing.
func (c *Console) Layout(text string, r layout.Region, predictWide bool) (bool, error) {
	plan := layout.Build([]byte(text), r, predictWide, c.profile, true)
	return plan.Complete, c.apply(plan)
}

// Fill covers r with ch and restores the cursor afterwards
func (c *Console) Fill(ch byte, r layout.Region) error {
	return c.apply(layout.Fill(ch, r))
}

func (c *Console) apply(plan layout.Plan) error {
	if len(plan.Ops) == 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	saved := c.tracker.Position()
	for _, op := range plan.Ops {
		switch op.Kind {
		case layout.OpMove:
			c.moveTo(op.At)
		case layout.OpText:
			c.out.Write(op.Text)
			c.tracker.AdvanceBytes(op.Text)
		case layout.OpColor:
			c.applyColor(op.Color)
		}
	}
	c.moveTo(saved)
	return c.flush()
}
