// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container runs conversion tools packaged as container images,
// through docker or podman, whichever is installed and answering.
package container

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const (
	Docker = "docker"
	Podman = "podman"

	// Auto picks docker and falls back to podman.
	Auto = "auto"
)

// Runtime is a container engine CLI.
type Runtime interface {
	// Name returns "docker" or "podman".
	Name() string

	// Available reports whether the binary is on PATH and answers "info".
	Available(ctx context.Context) bool

	// ImageExists returns nil when image is present locally.
	ImageExists(ctx context.Context, image string) error

	// Run starts a throwaway container and waits for it to exit.
	Run(ctx context.Context, spec Spec) error
}

// Spec describes one container run. Stdin is attached to the container,
// its stdout is copied to Stdout.
type Spec struct {
	Image  string
	Args   []string
	Stdin  io.Reader
	Stdout io.Writer
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(ctx context.Context, name string, args ...string) error
	RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) RunSilent(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func (osExecutor) RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// runtime implements Runtime for one binary. Docker and podman differ only
// in the binary name and the image check subcommand.
type runtime struct {
	bin           string
	imageCheckCmd []string
	exec          executor
}

func (r *runtime) Name() string { return r.bin }

func (r *runtime) Available(ctx context.Context) bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(ctx, r.bin, "info") == nil
}

func (r *runtime) ImageExists(ctx context.Context, image string) error {
	args := append(append([]string{}, r.imageCheckCmd...), image)
	if err := r.exec.RunSilent(ctx, r.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

func (r *runtime) Run(ctx context.Context, spec Spec) error {
	args := []string{"run", "--rm", "-i", "--network", "none", spec.Image}
	args = append(args, spec.Args...)

	var stderr bytes.Buffer
	if err := r.exec.RunPiped(ctx, r.bin, args, spec.Stdin, spec.Stdout, &stderr); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("running %s container %s: %w: %s", r.bin, spec.Image, err, msg)
		}
		return fmt.Errorf("running %s container %s: %w", r.bin, spec.Image, err)
	}
	return nil
}

func newRuntime(bin string, e executor) *runtime {
	check := []string{"image", "inspect"}
	if bin == Podman {
		check = []string{"image", "exists"}
	}
	return &runtime{bin: bin, imageCheckCmd: check, exec: e}
}

// Detect returns the preferred runtime ("docker", "podman" or "auto").
// With "auto" docker is tried first, then podman.
func Detect(ctx context.Context, preferred string) (Runtime, error) {
	return detect(ctx, osExecutor{}, preferred)
}

func detect(ctx context.Context, e executor, preferred string) (Runtime, error) {
	var candidates []string
	switch strings.ToLower(strings.TrimSpace(preferred)) {
	case "", Auto:
		candidates = []string{Docker, Podman}
	case Docker:
		candidates = []string{Docker}
	case Podman:
		candidates = []string{Podman}
	default:
		return nil, fmt.Errorf("unknown container runtime %q: use auto, docker or podman", preferred)
	}

	for _, bin := range candidates {
		if rt := newRuntime(bin, e); rt.Available(ctx) {
			return rt, nil
		}
	}
	return nil, fmt.Errorf("no container runtime available: tried %s", strings.Join(candidates, ", "))
}
