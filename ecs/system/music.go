package system

import (
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/flappy/ecs"
	"github.com/milk9111/flappy/ecs/component"
)

const defaultMusicVolume = 1.0

type MusicSystem struct{}

func NewMusicSystem() *MusicSystem {
	return &MusicSystem{}
}

func RequestMusic(w *ecs.World, track string, volume float64) {
	RequestMusicWithOptions(w, &component.MusicRequest{Track: track, Volume: volume, Loop: true})
}

func RequestMusicWithOptions(w *ecs.World, req *component.MusicRequest) {
	if w == nil || req == nil {
		return
	}
	ent := ecs.CreateEntity(w)
	_ = ecs.Add(w, ent, component.MusicRequestComponent.Kind(), req)
}

func StopMusic(w *ecs.World) {
	RequestMusicWithOptions(w, &component.MusicRequest{})
}

// SetMuted silences or restores the current track.
func SetMuted(w *ecs.World, muted bool) {
	ecs.ForEach(w, component.MusicPlayerComponent.Kind(), func(_ ecs.Entity, mp *component.MusicPlayer) {
		mp.Muted = muted
		if p := currentTrackPlayer(mp); p != nil {
			if muted {
				p.SetVolume(0)
			} else {
				p.SetVolume(mp.CurrentVolume)
			}
		}
	})
}

func (m *MusicSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	latest, requestEntities := m.consumeLatestRequest(w)
	for _, ent := range requestEntities {
		ecs.DestroyEntity(w, ent)
	}

	ent, ok := ecs.First(w, component.MusicPlayerComponent.Kind())
	if !ok {
		return
	}
	player, ok := ecs.Get(w, ent, component.MusicPlayerComponent.Kind())
	if !ok || player == nil {
		return
	}

	if latest != nil {
		m.applyRequest(player, *latest)
	}

	current := currentTrackPlayer(player)
	if current != nil && player.CurrentLoop && !current.IsPlaying() {
		current.Rewind()
		current.SetVolume(m.volume(player))
		current.Play()
	}
}

func (m *MusicSystem) consumeLatestRequest(w *ecs.World) (*component.MusicRequest, []ecs.Entity) {
	var latest *component.MusicRequest
	requestEntities := make([]ecs.Entity, 0)

	ecs.ForEach(w, component.MusicRequestComponent.Kind(), func(ent ecs.Entity, req *component.MusicRequest) {
		requestEntities = append(requestEntities, ent)
		if req == nil {
			return
		}
		copy := *req
		latest = &copy
	})

	return latest, requestEntities
}

func (m *MusicSystem) applyRequest(player *component.MusicPlayer, req component.MusicRequest) {
	track := strings.TrimSpace(req.Track)
	volume := req.Volume
	if volume <= 0 {
		if v, ok := player.TrackVolumes[track]; ok && v > 0 {
			volume = v
		} else {
			volume = defaultMusicVolume
		}
	}
	volume = min(volume, 1)

	if current := currentTrackPlayer(player); current != nil && player.CurrentTrack != track {
		current.Pause()
		current.Rewind()
	}

	if track == "" {
		player.CurrentTrack = ""
		player.CurrentVolume = 0
		player.CurrentLoop = false
		return
	}

	next, ok := player.Players[track]
	if !ok || next == nil {
		log.Printf("music: unknown track %q", track)
		player.CurrentTrack = ""
		return
	}

	restart := player.CurrentTrack != track || !next.IsPlaying()
	player.CurrentTrack = track
	player.CurrentVolume = volume
	player.CurrentLoop = req.Loop
	next.SetVolume(m.volume(player))
	if restart {
		next.Rewind()
		next.Play()
	}
}

func (m *MusicSystem) volume(player *component.MusicPlayer) float64 {
	if player.Muted {
		return 0
	}
	return player.CurrentVolume
}

func currentTrackPlayer(player *component.MusicPlayer) *audio.Player {
	if player == nil || player.CurrentTrack == "" || player.Players == nil {
		return nil
	}
	return player.Players[player.CurrentTrack]
}
