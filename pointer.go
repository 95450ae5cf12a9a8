package stage

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/stage/raycast"
)

// Pointer identifies an input pointer by host-assigned ID with its last
// position in normalized device coordinates (x, y in [-1, 1], y up).
type Pointer struct {
	ID       int
	Position mgl32.Vec2
}

// CapturePointer records p as the pointer holding capture. Event
// consumers route subsequent pointer events to the capture holder until
// ReleasePointer. Capturing while another pointer holds capture replaces
// it.
func (s *Store) CapturePointer(p Pointer) {
	s.commit(func(st *State) {
		st.Captured = &p
	})
}

// ReleasePointer drops capture if id currently holds it. Releasing an id
// that does not hold capture is a no-op, so release is idempotent.
func (s *Store) ReleasePointer(id int) {
	s.commit(func(st *State) {
		if st.Captured != nil && st.Captured.ID == id {
			st.Captured = nil
		}
	})
}

// CastPointer aims the store's raycaster through ndc using the active
// camera and returns it for intersection queries. The raycaster is a
// shared handle; under the cooperative threading contract the returned
// configuration stays valid until the next CastPointer call.
func (s *Store) CastPointer(ndc mgl32.Vec2) *raycast.Raycaster {
	st := s.Get()
	if st.Raycaster == nil || st.Camera == nil {
		return st.Raycaster
	}
	st.Raycaster.SetFromCamera(ndc, st.Camera)
	return st.Raycaster
}
