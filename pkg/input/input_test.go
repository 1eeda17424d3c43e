package input

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/leterax/moonview/pkg/camera"
)

func TestStatePressRelease(t *testing.T) {
	s := NewState()
	assert.False(t, s.Held(KeyForward))

	s.Press(KeyForward)
	assert.True(t, s.Held(KeyForward))
	assert.False(t, s.Held(KeyBack))

	s.Release(KeyForward)
	assert.False(t, s.Held(KeyForward))
}

func TestMotionDelta(t *testing.T) {
	tests := []struct {
		name string
		keys []Key
		want mgl32.Vec3
	}{
		{"none", nil, mgl32.Vec3{}},
		{"forward", []Key{KeyForward}, mgl32.Vec3{0, 0, -20}},
		{"back", []Key{KeyBack}, mgl32.Vec3{0, 0, 20}},
		{"left", []Key{KeyLeft}, mgl32.Vec3{-20, 0, 0}},
		{"right", []Key{KeyRight}, mgl32.Vec3{20, 0, 0}},
		{"diagonal", []Key{KeyForward, KeyRight}, mgl32.Vec3{20, 0, -20}},
		{"opposing", []Key{KeyForward, KeyBack}, mgl32.Vec3{}},
		{"unbound", []Key{"q", "W"}, mgl32.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys := NewState()
			for _, k := range tt.keys {
				keys.Press(k)
			}
			assert.Equal(t, tt.want, NewMotion(keys).Delta())
		})
	}
}

func TestMotionAppliesEveryTickWhileHeld(t *testing.T) {
	keys := NewState()
	motion := NewMotion(keys)
	s := camera.State{Position: mgl32.Vec3{0, 0, 5000}}

	keys.Press(KeyForward)
	for i := 0; i < 3; i++ {
		s = motion.Update(s)
	}
	assert.Equal(t, mgl32.Vec3{0, 0, 4940}, s.Position)

	keys.Release(KeyForward)
	for i := 0; i < 3; i++ {
		s = motion.Update(s)
	}
	assert.Equal(t, mgl32.Vec3{0, 0, 4940}, s.Position)
}

func TestMotionIsUnclamped(t *testing.T) {
	keys := NewState()
	keys.Press(KeyForward)
	motion := NewMotion(keys)
	s := camera.State{Position: mgl32.Vec3{0, 0, 100}}

	// drives straight through the origin and out the other side
	for i := 0; i < 10; i++ {
		s = motion.Update(s)
	}
	assert.Equal(t, mgl32.Vec3{0, 0, -100}, s.Position)
}
