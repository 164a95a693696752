// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockWorker tracks how many times Run was called and records the
// order in which workers were started.
type mockWorker struct {
	id       int
	runCount int
	order    *[]int
}

func (m *mockWorker) Run() {
	m.runCount++
	if m.order != nil {
		*m.order = append(*m.order, m.id)
	}
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := NewWorkers(w1, w2, w3)
	ws.Run()

	for _, w := range []*mockWorker{w1, w2, w3} {
		assert.Equal(t, 1, w.runCount)
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := NewWorkers()

	assert.NotPanics(t, ws.Run)
}

func TestWorkers_Run_Order(t *testing.T) {
	order := []int{}

	ws := NewWorkers(
		&mockWorker{id: 1, order: &order},
		&mockWorker{id: 2, order: &order},
		&mockWorker{id: 3, order: &order},
	)
	ws.Run()

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestWorkers_Run_MultipleRuns(t *testing.T) {
	w := &mockWorker{}
	ws := NewWorkers(w)

	ws.Run()
	ws.Run()

	assert.Equal(t, 2, w.runCount)
}
