// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package container

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExecutor answers LookPath and RunSilent from tables and records the
// last piped command.
type fakeExecutor struct {
	onPath   map[string]bool
	commands map[string]bool
	piped    func(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error

	lastArgs []string
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if f.onPath[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (f *fakeExecutor) RunSilent(_ context.Context, name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if f.commands[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (f *fakeExecutor) RunPiped(_ context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	f.lastArgs = append([]string{name}, args...)
	if f.piped != nil {
		return f.piped(name, args, stdin, stdout, stderr)
	}
	return nil
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		preferred string
		exec      *fakeExecutor
		wantName  string
		wantErr   string
	}{
		{
			name: "docker available",
			exec: &fakeExecutor{
				onPath:   map[string]bool{"docker": true},
				commands: map[string]bool{"docker info": true},
			},
			wantName: "docker",
		},
		{
			name:      "podman fallback when docker missing",
			preferred: "auto",
			exec: &fakeExecutor{
				onPath:   map[string]bool{"podman": true},
				commands: map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name: "docker on PATH but info fails",
			exec: &fakeExecutor{
				onPath:   map[string]bool{"docker": true, "podman": true},
				commands: map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name:      "podman requested over working docker",
			preferred: "Podman",
			exec: &fakeExecutor{
				onPath:   map[string]bool{"docker": true, "podman": true},
				commands: map[string]bool{"docker info": true, "podman info": true},
			},
			wantName: "podman",
		},
		{
			name:      "docker requested but missing",
			preferred: "docker",
			exec: &fakeExecutor{
				onPath:   map[string]bool{"podman": true},
				commands: map[string]bool{"podman info": true},
			},
			wantErr: "no container runtime available: tried docker",
		},
		{
			name:    "neither available",
			exec:    &fakeExecutor{},
			wantErr: "tried docker, podman",
		},
		{
			name:      "unknown runtime",
			preferred: "lxc",
			exec:      &fakeExecutor{},
			wantErr:   "unknown container runtime",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := detect(context.Background(), tt.exec, tt.preferred)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, rt.Name())
		})
	}
}

func TestImageExists(t *testing.T) {
	tests := []struct {
		name    string
		bin     string
		cmds    map[string]bool
		wantErr bool
	}{
		{name: "docker found", bin: Docker, cmds: map[string]bool{"docker image inspect markitdown:latest": true}},
		{name: "docker missing", bin: Docker, wantErr: true},
		{name: "podman found", bin: Podman, cmds: map[string]bool{"podman image exists markitdown:latest": true}},
		{name: "podman missing", bin: Podman, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := newRuntime(tt.bin, &fakeExecutor{commands: tt.cmds})
			err := rt.ImageExists(context.Background(), "markitdown:latest")
			if tt.wantErr {
				assert.ErrorContains(t, err, "markitdown:latest")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRun(t *testing.T) {
	t.Run("pipes stdin to stdout", func(t *testing.T) {
		fe := &fakeExecutor{piped: func(_ string, _ []string, stdin io.Reader, stdout, _ io.Writer) error {
			data, _ := io.ReadAll(stdin)
			_, _ = stdout.Write([]byte("converted: " + string(data)))
			return nil
		}}
		var out bytes.Buffer
		err := newRuntime(Docker, fe).Run(context.Background(), Spec{
			Image:  "markitdown:latest",
			Args:   []string{"--keep-data-uris"},
			Stdin:  strings.NewReader("pdf bytes"),
			Stdout: &out,
		})
		require.NoError(t, err)
		assert.Equal(t, "converted: pdf bytes", out.String())
		assert.Equal(t, []string{"docker", "run", "--rm", "-i", "--network", "none", "markitdown:latest", "--keep-data-uris"}, fe.lastArgs)
	})

	t.Run("failure carries stderr", func(t *testing.T) {
		fe := &fakeExecutor{piped: func(_ string, _ []string, _ io.Reader, _, stderr io.Writer) error {
			_, _ = stderr.Write([]byte("unsupported file\n"))
			return errors.New("exit status 1")
		}}
		err := newRuntime(Podman, fe).Run(context.Background(), Spec{Image: "markitdown:latest", Stdout: io.Discard})
		assert.ErrorContains(t, err, "running podman container markitdown:latest: exit status 1: unsupported file")
	})

	t.Run("failure without stderr", func(t *testing.T) {
		fe := &fakeExecutor{piped: func(string, []string, io.Reader, io.Writer, io.Writer) error {
			return errors.New("exit status 125")
		}}
		err := newRuntime(Docker, fe).Run(context.Background(), Spec{Image: "x", Stdout: io.Discard})
		assert.EqualError(t, err, "running docker container x: exit status 125")
	})
}
