package main

import (
	"mini-voxel/internal/input"
)

// script plays a fixed input pattern through an input.Manager, the same
// way device callbacks would: walk forward, turn slowly, hop now and then,
// and alternate breaking and placing.
type script struct {
	im *input.Manager
}

const (
	jumpEvery  = 90
	digEvery   = 120
	turnPerTic = 0.75
	hotbarSize = 9
)

func newScript(im *input.Manager) *script {
	im.Press(input.ActionMoveForward)
	return &script{im: im}
}

func (s *script) apply(tick int) {
	s.im.AddLook(turnPerTic, 0)

	// Look down for the first second so there is something to dig.
	if tick < 60 {
		s.im.AddLook(0, -1)
	}

	tap(s.im, input.ActionJump, tick%jumpEvery == 0)
	tap(s.im, input.ActionBreak, tick%digEvery == 30)
	tap(s.im, input.ActionPlace, tick%digEvery == 90)

	// Cycle the hotbar each dig round.
	for slot := 0; slot < hotbarSize; slot++ {
		on := tick%digEvery == 0 && slot == (tick/digEvery)%hotbarSize
		tap(s.im, input.ActionHotbar1+input.Action(slot), on)
	}
}

// tap presses on the ticks where on is true and releases otherwise, so each
// press produces exactly one edge.
func tap(im *input.Manager, a input.Action, on bool) {
	if on {
		im.Press(a)
		return
	}
	if im.IsActive(a) {
		im.Release(a)
	}
}
