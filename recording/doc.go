// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package recording captures the work issued to a render.Backend.
//
// A Recorder is itself a render.Backend. It forwards every call to the
// backend it wraps and appends a typed command describing it. Draw calls
// are stored with a snapshot of their material, so a batch that rebinds
// one material between draws still records what each draw actually used.
//
// Without a wrapped backend the Recorder is headless: it creates
// in-memory resources and draws nothing, which is enough to test code
// that batches geometry.
//
// # Example
//
//	rec := recording.New(software.New(800, 600))
//	ctx := render.NewContext(rec, true)
//	b.RenderDefault(ctx, nil)
//	r := rec.Finish()
//	for _, c := range r.DrawCalls() {
//		fmt.Println(c.Call.IndexStart, c.Call.IndexCount)
//	}
//
// The Recorder is registered with render as "recording" (headless).
package recording
