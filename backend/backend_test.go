// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"
	"testing"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/command"
)

// drawCounter implements only Draw; any other call panics on the nil
// embedded interface.
type drawCounter struct {
	rhi.Renderer
	draws int
}

func (r *drawCounter) Draw(args []rhi.DrawArguments) { r.draws += len(args) }

type rendererBackend struct {
	fakeBackend
	r rhi.Renderer
}

func (b *rendererBackend) Renderer() rhi.Renderer { return b.r }

type executorBackend struct {
	fakeBackend
	executed int
}

func (b *executorBackend) Execute(buf *command.Buffer) error {
	b.executed += buf.Len()
	return nil
}

func TestExecute(t *testing.T) {
	buf := command.NewBuffer()
	command.Draw(buf, 3, 1, 0, 0)
	command.Draw(buf, 6, 1, 0, 0)

	t.Run("renderer", func(t *testing.T) {
		r := &drawCounter{}
		b := &rendererBackend{r: r}
		if err := Execute(b, buf); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if r.draws != 2 {
			t.Errorf("draws = %d, want 2", r.draws)
		}
		if buf.Len() != 2 {
			t.Errorf("buffer Len() = %d after Execute, want 2", buf.Len())
		}
	})

	t.Run("executor", func(t *testing.T) {
		b := &executorBackend{}
		if err := Execute(b, buf); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if b.executed != 2 {
			t.Errorf("executed = %d, want 2", b.executed)
		}
	})

	t.Run("not initialized", func(t *testing.T) {
		err := Execute(&fakeBackend{name: "fake"}, buf)
		if !errors.Is(err, ErrNotInitialized) {
			t.Errorf("Execute() error = %v, want ErrNotInitialized", err)
		}
	})
}
