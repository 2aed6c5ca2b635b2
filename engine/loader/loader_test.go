package loader

import (
	"context"
	"testing"

	"github.com/hubastard/grove3d/engine/colors"
	"github.com/hubastard/grove3d/engine/geometry"
	"github.com/hubastard/grove3d/engine/materials"
	"github.com/hubastard/grove3d/engine/scene"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	mesh *scene.Mesh
	err  error
	n    int
}

func (r *result) done(mesh *scene.Mesh, err error) {
	r.mesh, r.err = mesh, err
	r.n++
}

// gatedDecoder blocks every decode until release is closed.
func gatedDecoder(release <-chan struct{}) DecodeFunc {
	return func(ctx context.Context, path string) (*scene.Mesh, error) {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return scene.NewMesh(geometry.NewBox(1, 1, 1, 1), materials.NewFlat(colors.White)), nil
	}
}

func newLoader(t *testing.T, decode DecodeFunc) *Loader {
	t.Helper()
	l, _ := test.NewNullLogger()
	return New(decode, l)
}

func TestLoadAttachesOnPoll(t *testing.T) {
	release := make(chan struct{})
	l := newLoader(t, gatedDecoder(release))
	s := scene.NewScene(nil)
	target := scene.NewNode()
	s.Add(target)

	var r result
	task := l.LoadAsync(context.Background(), "box.glb", target, r.done)
	assert.Equal(t, 1, l.Pending())
	assert.Equal(t, 0, l.Poll())
	assert.Empty(t, target.Children())

	close(release)
	l.Wait()
	assert.Empty(t, target.Children())

	assert.Equal(t, 1, l.Poll())
	require.NoError(t, r.err)
	require.NotNil(t, r.mesh)
	assert.Equal(t, []scene.Object{r.mesh}, target.Children())
	assert.True(t, task.Delivered())
	assert.Equal(t, "box.glb", task.Path())
	assert.Equal(t, 0, l.Pending())
}

func TestCancelledTaskDoesNotMutate(t *testing.T) {
	release := make(chan struct{})
	l := newLoader(t, gatedDecoder(release))
	s := scene.NewScene(nil)

	var r result
	task := l.LoadAsync(context.Background(), "a.glb", s, r.done)
	task.Cancel()
	l.Wait()
	l.Poll()

	assert.ErrorIs(t, r.err, ErrCancelled)
	assert.Nil(t, r.mesh)
	assert.Empty(t, s.Children())
	close(release)
}

func TestCancelAfterDecodeStillDrops(t *testing.T) {
	release := make(chan struct{})
	close(release)
	l := newLoader(t, gatedDecoder(release))
	s := scene.NewScene(nil)

	var r result
	task := l.LoadAsync(context.Background(), "a.glb", s, r.done)
	l.Wait()
	task.Cancel()
	l.Poll()

	assert.ErrorIs(t, r.err, ErrCancelled)
	assert.Empty(t, s.Children())
}

func TestRemovedTargetIsNotMutated(t *testing.T) {
	release := make(chan struct{})
	l := newLoader(t, gatedDecoder(release))
	s := scene.NewScene(nil)
	target := scene.NewNode()
	s.Add(target)

	var r result
	l.LoadAsync(context.Background(), "a.glb", target, r.done)
	s.Remove(target)

	close(release)
	l.Wait()
	l.Poll()

	assert.ErrorIs(t, r.err, ErrTargetDetached)
	assert.Empty(t, target.Children())
	assert.Equal(t, 1, r.n)
}

func TestDisposedTargetIsNotMutated(t *testing.T) {
	release := make(chan struct{})
	close(release)
	l := newLoader(t, gatedDecoder(release))
	s := scene.NewScene(nil)
	target := scene.NewNode()
	s.Add(target)

	var r result
	l.LoadAsync(context.Background(), "a.glb", target, r.done)
	target.Dispose()
	l.Wait()
	l.Poll()

	assert.ErrorIs(t, r.err, ErrTargetDetached)
	assert.Empty(t, target.Children())
}

func TestDecodeErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	l := newLoader(t, func(context.Context, string) (*scene.Mesh, error) { return nil, boom })
	s := scene.NewScene(nil)

	var r result
	l.LoadAsync(context.Background(), "bad.glb", s, r.done)
	l.Wait()
	l.Poll()

	assert.ErrorIs(t, r.err, boom)
	assert.Contains(t, r.err.Error(), "bad.glb")
}

func TestParentContextCancels(t *testing.T) {
	release := make(chan struct{})
	l := newLoader(t, gatedDecoder(release))
	s := scene.NewScene(nil)

	ctx, cancel := context.WithCancel(context.Background())
	var r result
	l.LoadAsync(ctx, "a.glb", s, r.done)
	cancel()
	l.Wait()
	l.Poll()

	assert.ErrorIs(t, r.err, ErrCancelled)
	close(release)
}

func TestCloseDeliversCancelled(t *testing.T) {
	release := make(chan struct{})
	l := newLoader(t, gatedDecoder(release))
	s := scene.NewScene(nil)

	var a, b result
	l.LoadAsync(context.Background(), "a.glb", s, a.done)
	l.LoadAsync(context.Background(), "b.glb", s, b.done)
	l.Close()

	assert.ErrorIs(t, a.err, ErrCancelled)
	assert.ErrorIs(t, b.err, ErrCancelled)
	assert.Equal(t, 0, l.Pending())
	assert.Empty(t, s.Children())
	close(release)
}
