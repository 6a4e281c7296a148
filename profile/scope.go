// File: profile/scope.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package profile

import "time"

// Scope times one unit of work:
//
//	s := profile.Begin(data, "decode")
//	defer s.End()
//
// A Scope started while profiling is disabled records nothing.
type Scope struct {
	data  *Data
	name  string
	start time.Time
}

// Begin opens a timing scope against a profile block. data may be nil,
// in which case only the journal receives the sample.
func Begin(data *Data, name string) Scope {
	if !Enabled() {
		return Scope{}
	}
	return Scope{data: data, name: name, start: time.Now()}
}

// End closes the scope, updating the owning block and the journal.
func (s Scope) End() {
	if s.start.IsZero() {
		return
	}
	elapsed := time.Since(s.start)
	thread := ""
	if s.data != nil {
		s.data.Record(elapsed)
		thread = s.data.Name()
	}
	record(Sample{Thread: thread, Scope: s.name, Elapsed: elapsed})
}
