// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mode_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/dyguan372/rippled/chain"
	"github.com/dyguan372/rippled/fault"
	"github.com/dyguan372/rippled/mode"
)

const logDirectory = "testlog"

func TestMain(m *testing.M) {
	os.RemoveAll(logDirectory)
	os.Mkdir(logDirectory, 0700)

	logging := logger.Configuration{
		Directory: logDirectory,
		File:      "test.log",
		Size:      50000,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	if err := logger.Initialise(logging); nil != err {
		panic(fmt.Sprintf("logger initialise failed: %s", err))
	}

	rc := m.Run()

	logger.Finalise()
	os.RemoveAll(logDirectory)
	os.Exit(rc)
}

func TestInvalidChain(t *testing.T) {
	err := mode.Initialise("bogus")
	if fault.ErrInvalidChain != err {
		t.Fatalf("initialise error: %v  expected: %v", err, fault.ErrInvalidChain)
	}
}

func TestTransitions(t *testing.T) {
	if err := mode.Initialise(chain.Testing); nil != err {
		t.Fatalf("initialise error: %s", err)
	}
	defer mode.Finalise()

	if !mode.Is(mode.Resynchronise) {
		t.Errorf("initial mode: %s  expected: Resynchronise", mode.String())
	}
	if !mode.IsTesting() {
		t.Error("testing chain not detected")
	}
	if chain.Testing != mode.ChainName() {
		t.Errorf("chain: %s  expected: %s", mode.ChainName(), chain.Testing)
	}

	mode.Set(mode.Normal)
	if !mode.Is(mode.Normal) || mode.IsNot(mode.Normal) {
		t.Errorf("mode: %s  expected: Normal", mode.String())
	}

	// the unsupported-amendment state is a valid target
	mode.Set(mode.Blocked)
	if !mode.Is(mode.Blocked) {
		t.Errorf("mode: %s  expected: Blocked", mode.String())
	}
}
