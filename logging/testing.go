// Copyright 2023 The Authors (see AUTHORS file)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// TestLogger creates a new logger for use in tests. Output is routed through
// the test's log, so it is only shown when tests fail or run with -v.
func TestLogger(tb testing.TB) *zap.SugaredLogger {
	tb.Helper()

	return zaptest.NewLogger(tb, zaptest.Level(zap.DebugLevel)).Sugar()
}
