package system

import (
	"github.com/milk9111/flappy/ecs"
	"github.com/milk9111/flappy/ecs/component"
)

// PlaySound flags name on every Audio component that has it.
func PlaySound(w *ecs.World, name string) bool {
	played := false
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, a *component.Audio) {
		if a.Request(name) {
			played = true
		}
	})
	return played
}

// StopSound flags name to stop on every Audio component that has it.
func StopSound(w *ecs.World, name string) bool {
	stopped := false
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, a *component.Audio) {
		if a.Halt(name) {
			stopped = true
		}
	})
	return stopped
}

// AudioSystem plays "wing" for every flap event of the frame, then applies
// the play and stop flags.
type AudioSystem struct {
	Muted bool
}

func NewAudioSystem() *AudioSystem {
	return &AudioSystem{}
}

func (a *AudioSystem) Update(w *ecs.World) {
	a.queueEventSounds(w)

	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		count := min(len(audioComp.Play), len(audioComp.Players))

		for i := 0; i < count; i++ {
			if !audioComp.Play[i] {
				continue
			}
			audioComp.Play[i] = false
			if a.Muted {
				continue
			}

			player := audioComp.Players[i]
			if player != nil {
				player.SetVolume(audioComp.Volume[i])
				player.Rewind()
				player.Play()
			}
		}

		for i := 0; i < min(len(audioComp.Stop), len(audioComp.Players)); i++ {
			if !audioComp.Stop[i] {
				continue
			}
			audioComp.Stop[i] = false

			player := audioComp.Players[i]
			if player != nil && player.IsPlaying() {
				player.Pause()
			}
		}
	})
}

func (a *AudioSystem) queueEventSounds(w *ecs.World) {
	if len(w.Events().Take(ecs.EventFlap)) > 0 {
		PlaySound(w, "wing")
	}
}
