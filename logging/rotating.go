// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// RotatingFileSink writes records to a file that is rolled over when the
// wall clock crosses a period boundary. Rolled files are kept as numbered
// backups: path.1 is the most recent, path.N the oldest. Anything older
// than the backup count is deleted, so at most BackupCount+1 files exist.
//
// The boundary is checked on each write; there is no background timer.
type RotatingFileSink struct {
	sinkBase

	path     string
	when     When
	interval int
	backups  int
	loc      *time.Location
	now      func() time.Time

	// guarded by sinkBase.mu
	file       *os.File
	rolloverAt time.Time
}

// RotationOption configures a RotatingFileSink.
type RotationOption func(*RotatingFileSink)

// WithWhen sets the rotation unit. The default is WhenHour.
func WithWhen(w When) RotationOption {
	return func(s *RotatingFileSink) {
		s.when = w
	}
}

// WithInterval sets how many units make one rotation period. The default is 1.
func WithInterval(n int) RotationOption {
	return func(s *RotatingFileSink) {
		s.interval = n
	}
}

// WithBackupCount sets how many rolled files are kept. With zero, the
// closed file is deleted at each rollover.
func WithBackupCount(n int) RotationOption {
	return func(s *RotatingFileSink) {
		s.backups = n
	}
}

// WithRotationUTC aligns period boundaries to UTC instead of local time.
func WithRotationUTC(utc bool) RotationOption {
	return func(s *RotatingFileSink) {
		if utc {
			s.loc = time.UTC
		} else {
			s.loc = time.Local
		}
	}
}

// WithClock replaces time.Now for rollover decisions.
func WithClock(now func() time.Time) RotationOption {
	return func(s *RotatingFileSink) {
		if now != nil {
			s.now = now
		}
	}
}

// WithFileSinkOptions applies the options shared by all sinks.
func WithFileSinkOptions(opts ...SinkOption) RotationOption {
	return func(s *RotatingFileSink) {
		for _, opt := range opts {
			opt(&s.sinkBase)
		}
	}
}

// NewRotatingFileSink creates the parent directory of path if needed and
// opens path for appending. If the file already exists, its modification
// time starts the first period, so a file left over from an earlier period
// is rolled over on the first write.
//
// All setup failures wrap ErrConfiguration.
func NewRotatingFileSink(path string, opts ...RotationOption) (*RotatingFileSink, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty log file path", ErrConfiguration)
	}

	s := &RotatingFileSink{
		path:     filepath.Clean(path),
		when:     WhenHour,
		interval: 1,
		loc:      time.Local,
		now:      time.Now,
	}
	s.init(filepath.Base(s.path), nil)
	for _, opt := range opts {
		opt(s)
	}

	if err := s.when.validate(); err != nil {
		return nil, err
	}
	if s.interval < 1 {
		return nil, fmt.Errorf("%w: rotation interval must be at least 1, got %d", ErrConfiguration, s.interval)
	}
	if s.backups < 0 {
		return nil, fmt.Errorf("%w: backup count cannot be negative, got %d", ErrConfiguration, s.backups)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return nil, fmt.Errorf("%w: creating log directory: %w", ErrConfiguration, err)
	}

	seed := s.now()
	if fi, err := os.Stat(s.path); err == nil && fi.Mode().IsRegular() {
		seed = fi.ModTime()
	}
	s.rolloverAt = s.when.next(seed, s.interval, s.loc)

	if err := s.open(); err != nil {
		return nil, fmt.Errorf("%w: opening log file: %w", ErrConfiguration, err)
	}
	return s, nil
}

// Path returns the path of the current log file.
func (s *RotatingFileSink) Path() string {
	return s.path
}

// Backups returns the backup files that currently exist, most recent first.
func (s *RotatingFileSink) Backups() []string {
	var out []string
	for k := 1; k <= s.backups; k++ {
		name := s.backupName(k)
		if _, err := os.Stat(name); err == nil {
			out = append(out, name)
		}
	}
	return out
}

// Handle implements Sink.
func (s *RotatingFileSink) Handle(r Record) error {
	ok, filterErr := s.admit(r)
	if !ok {
		return filterErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if err := s.write(s.formatter.Format(r) + "\n"); err != nil {
		return errors.Join(err, filterErr)
	}
	return filterErr
}

// Rotate forces a rollover regardless of the clock.
func (s *RotatingFileSink) Rotate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if err := s.rotate(s.now()); err != nil {
		return err
	}
	if err := s.open(); err != nil {
		return fmt.Errorf("%w: reopening %s: %w", ErrRotation, s.path, err)
	}
	return nil
}

// Close implements Sink.
func (s *RotatingFileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

func (s *RotatingFileSink) write(line string) error {
	now := s.now()
	if !now.Before(s.rolloverAt) {
		if err := s.rotate(now); err != nil {
			return err
		}
	}
	if s.file == nil {
		if err := s.open(); err != nil {
			return fmt.Errorf("%w: reopening %s: %w", ErrRotation, s.path, err)
		}
	}
	if _, err := s.file.WriteString(line); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

func (s *RotatingFileSink) open() error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	s.file = f
	return nil
}

// rotate closes the current file and shifts the backups. The next period
// is only scheduled once the shift succeeded, so a failed rollover is
// retried on the next write. The caller reopens the base file.
func (s *RotatingFileSink) rotate(now time.Time) error {
	if s.file != nil {
		err := s.file.Close()
		s.file = nil
		if err != nil {
			return fmt.Errorf("%w: closing %s: %w", ErrRotation, s.path, err)
		}
	}
	if err := s.shiftBackups(); err != nil {
		return fmt.Errorf("%w: %w", ErrRotation, err)
	}
	s.rolloverAt = s.when.next(now, s.interval, s.loc)
	if s.backups > 0 {
		if err := s.sweep(); err != nil {
			return fmt.Errorf("%w: removing stale backups: %w", ErrRotation, err)
		}
	}
	return nil
}

func (s *RotatingFileSink) shiftBackups() error {
	if s.backups == 0 {
		return removeIfExists(s.path)
	}
	if err := removeIfExists(s.backupName(s.backups)); err != nil {
		return err
	}
	for k := s.backups - 1; k >= 1; k-- {
		if err := renameIfExists(s.backupName(k), s.backupName(k+1)); err != nil {
			return err
		}
	}
	return renameIfExists(s.path, s.backupName(1))
}

// sweep deletes backups numbered beyond the backup count, which are left
// behind when the count is lowered between runs.
func (s *RotatingFileSink) sweep() error {
	entries, err := os.ReadDir(filepath.Dir(s.path))
	if err != nil {
		return err
	}
	prefix := filepath.Base(s.path) + "."
	var errs []error
	for _, e := range entries {
		suffix, ok := strings.CutPrefix(e.Name(), prefix)
		if !ok {
			continue
		}
		if k, err := strconv.Atoi(suffix); err == nil && k > s.backups {
			errs = append(errs, removeIfExists(filepath.Join(filepath.Dir(s.path), e.Name())))
		}
	}
	return errors.Join(errs...)
}

func (s *RotatingFileSink) backupName(k int) string {
	return s.path + "." + strconv.Itoa(k)
}

func removeIfExists(name string) error {
	if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func renameIfExists(from, to string) error {
	if err := os.Rename(from, to); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
