package usecase

import (
	"github.com/bnema/floatdock/internal/application/port"
	"github.com/bnema/floatdock/internal/domain/entity"
	"github.com/bnema/floatdock/internal/domain/layout"
)

// dropAnimation is one in-flight drop recovery. Frames are produced by
// layout.Interpolate so the scheduler only decides when the next frame runs.
type dropAnimation struct {
	pass     *layoutPass
	panel    port.Panel
	from, to entity.Rect
	step     int
	done     bool
	cancel   port.CancelFunc
}

// animateTo slides p from from to to, then runs the post-placement sequence.
// Any animation already running for p is replaced.
func (uc *ArrangePanelsUseCase) animateTo(pass *layoutPass, p port.Panel, from, to entity.Rect) {
	id := p.ID()
	uc.cancelAnimation(id)

	if uc.scheduler == nil || from.ApproxEqual(to, 0.5) {
		uc.write(pass, p, to)
		uc.settle(pass, p)
		return
	}

	anim := &dropAnimation{pass: pass, panel: p, from: from, to: to}
	uc.animations[id] = anim

	interval := pass.settings.AnimationDuration / layout.AnimationSteps
	cancel := uc.scheduler.Every(interval, func() bool { return uc.stepAnimation(anim) })
	if anim.done {
		// The scheduler ran every frame before returning.
		if cancel != nil {
			cancel()
		}
		return
	}
	anim.cancel = cancel
}

// stepAnimation writes the next frame of anim. It returns false once the
// animation finished or was cancelled.
func (uc *ArrangePanelsUseCase) stepAnimation(anim *dropAnimation) (more bool) {
	id := anim.panel.ID()
	defer func() {
		if !more {
			anim.done = true
			if uc.animations[id] == anim {
				delete(uc.animations, id)
			}
		}
	}()
	defer uc.recoverOperation(anim.pass.ctx, "animate_drop", uc.applyDepth)

	if anim.done || uc.animations[id] != anim {
		return false
	}

	anim.step++
	frame := layout.Interpolate(anim.from, anim.to, layout.StepFraction(anim.step, layout.AnimationSteps))
	uc.write(anim.pass, anim.panel, frame)
	if anim.step < layout.AnimationSteps {
		return true
	}

	delete(uc.animations, id)
	anim.pass.panelLog(id).Debug().Msg("drop recovery finished")
	uc.settle(anim.pass, anim.panel)
	return false
}

// cancelAnimation stops the animation running for id, leaving the panel where
// the last frame put it.
func (uc *ArrangePanelsUseCase) cancelAnimation(id entity.PanelID) {
	anim, ok := uc.animations[id]
	if !ok {
		return
	}
	delete(uc.animations, id)
	anim.done = true
	if anim.cancel != nil {
		anim.cancel()
	}
}
