// SPDX-License-Identifier: BSD-3-Clause

package snapshot

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialValues(t *testing.T) {
	s := New(95, 200, 0.03, 0, true)

	assert.Equal(t, float32(0), s.CurrentTemp(), "temperature is zero before the first read")
	assert.Equal(t, float32(95), s.TargetTemp())
	assert.False(t, s.HeaterOn())
	assert.True(t, s.InColdStart())
	assert.False(t, s.WatchdogReset())

	kp, ki, kd := s.Tunings()
	assert.Equal(t, float32(200), kp)
	assert.Equal(t, float32(0.03), ki)
	assert.Equal(t, float32(0), kd)
}

func TestLoadCopiesAllFields(t *testing.T) {
	s := New(95, 200, 0.03, 0, true)
	s.SetCurrentTemp(93.4)
	s.SetHeaterOn(true)
	s.SetLastOutput(412)
	s.SetTunings(69, 0.17, 0)
	s.DisableColdStart()
	s.SetWatchdogReset(true)

	v := s.Load()
	assert.Equal(t, Values{
		CurrentTemp:   93.4,
		TargetTemp:    95,
		HeaterOn:      true,
		Kp:            69,
		Ki:            0.17,
		Kd:            0,
		ColdStart:     false,
		LastOutput:    412,
		WatchdogReset: true,
	}, v)
}

func TestConcurrentReadersSeeUntornValues(t *testing.T) {
	// One writer alternating between two consistent value sets, many
	// readers asserting each individual field is always one of the two
	// written values — never a torn bit pattern.
	s := New(95, 200, 0.03, 0, true)

	var writer, readers sync.WaitGroup
	stop := make(chan struct{})

	writer.Add(1)
	go func() {
		defer writer.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			if i%2 == 0 {
				s.SetCurrentTemp(25.25)
			} else {
				s.SetCurrentTemp(94.5)
			}
		}
	}()

	for range 4 {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for range 10000 {
				got := s.CurrentTemp()
				if got != 0 && got != 25.25 && got != 94.5 {
					t.Errorf("torn read: %v", got)
					return
				}
			}
		}()
	}

	readers.Wait()
	close(stop)
	writer.Wait()
}
