// Copyright 2016 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package clog provides a logging interface for the compiler packages.
package clog

import (
	"log"
	"sync"
)

// Logger is the clog logging interface.
type Logger interface {
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

// Leveled is implemented by loggers that keep their own verbosity level.
type Leveled interface {
	V(level int) bool
	SetV(level int)
}

var (
	mu        sync.RWMutex
	logger    Logger = stdlog{}
	verbosity int
)

// SetLogger sets the clog logging implementation. A nil logger discards
// all messages.
func SetLogger(l Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

func current() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// V returns whether the current clog verbosity is above the specified level.
func V(level int) bool {
	if l, ok := current().(Leveled); ok {
		return l.V(level)
	}
	mu.RLock()
	defer mu.RUnlock()
	return verbosity >= level
}

// SetV sets the clog verbosity level.
func SetV(level int) {
	if l, ok := current().(Leveled); ok {
		l.SetV(level)
		return
	}
	mu.Lock()
	verbosity = level
	mu.Unlock()
}

// Infof logs information level messages.
func Infof(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Infof(format, args...)
	}
}

// Warningf logs warning level messages.
func Warningf(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Warningf(format, args...)
	}
}

// Errorf logs error level messages.
func Errorf(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Errorf(format, args...)
	}
}

// Fatalf logs fatal messages and terminates the program.
func Fatalf(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Fatalf(format, args...)
	}
}

// stdlog wraps the standard library logger.
type stdlog struct{}

func (stdlog) Infof(format string, args ...interface{})    { log.Printf(format, args...) }
func (stdlog) Warningf(format string, args ...interface{}) { log.Printf("WARN: "+format, args...) }
func (stdlog) Errorf(format string, args ...interface{})   { log.Printf("ERROR: "+format, args...) }
func (stdlog) Fatalf(format string, args ...interface{})   { log.Fatalf("FATAL: "+format, args...) }
