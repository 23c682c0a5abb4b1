package main

import (
	"io"
	"os"
	"time"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, working directory and process environment.
type Environment struct {
	Now       func() time.Time
	Stdout    io.Writer
	Stderr    io.Writer
	Getwd     func() (string, error)
	LookupEnv func(string) (string, bool)
	Environ   func() []string
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:       time.Now,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Getwd:     os.Getwd,
		LookupEnv: os.LookupEnv,
		Environ:   os.Environ,
	}
}
