package converter

import (
	"fmt"
	"log"
	"time"

	"github.com/google/pprof/profile"
)

// ConvertCallsToPprof converts the completed calls of one trace session to
// pprof format.
// Parameters:
//   - records: completed call/return pairs collected by the processor
//   - rateHz: nominal sample rate hint recorded in the profile period
//   - debug: enable detailed logging of conversion process
//
// Returns a profile.Profile or nil if no calls completed
func ConvertCallsToPprof(records []CallRecord, rateHz int, debug bool) *profile.Profile {
	callCount := int64(len(records))

	if callCount == 0 {
		return nil
	}

	// Calculate timing information for the entire session
	firstCallTime := records[0].Start
	lastReturnTime := records[len(records)-1].End
	actualDuration := lastReturnTime.Sub(firstCallTime)
	if firstCallTime.IsZero() || lastReturnTime.IsZero() {
		actualDuration = 0
	}

	// Log session statistics if debug mode is enabled
	if debug {
		log.Printf("Session stats: start=%v end=%v duration=%v calls=%d rate=%d/s",
			firstCallTime.Format(time.RFC3339Nano),
			lastReturnTime.Format(time.RFC3339Nano),
			actualDuration,
			callCount,
			rateHz)
	}

	// Initialize the pprof profile with metadata
	prof := &profile.Profile{
		SampleType: []*profile.ValueType{
			{Type: "cpu", Unit: "nanoseconds"},
			{Type: "calls", Unit: "count"},
		},
		DurationNanos: actualDuration.Nanoseconds(),
		PeriodType: &profile.ValueType{
			Type: "cpu",
			Unit: "nanoseconds",
		},
		Period: actualDuration.Nanoseconds() / callCount,
	}
	if !firstCallTime.IsZero() {
		prof.TimeNanos = firstCallTime.UnixNano()
	}

	// Maps to track unique functions and locations
	functions := make(map[string]*profile.Function)
	locations := make(map[string]*profile.Location)
	nextFuncID := uint64(1)
	nextLocID := uint64(1)

	// Process each completed call and convert to pprof format
	for _, record := range records {
		var sampleLocations []*profile.Location

		// Convert each stack frame in the record
		for _, frame := range record.Frames {
			functionKey := frame.Method + frame.File

			// Create or reuse function entry
			if _, exists := functions[functionKey]; !exists {
				functions[functionKey] = &profile.Function{
					ID:         nextFuncID,
					Name:       frame.Method,
					SystemName: frame.Method,
					Filename:   frame.File,
					StartLine:  int64(frame.StartLine),
				}
				prof.Function = append(prof.Function, functions[functionKey])
				nextFuncID++
			}

			// Create or reuse location entry
			locationKey := fmt.Sprintf("%s:%d", functionKey, frame.StartLine)
			if _, exists := locations[locationKey]; !exists {
				locations[locationKey] = &profile.Location{
					ID: nextLocID,
					Line: []profile.Line{
						{
							Function: functions[functionKey],
							Line:     int64(frame.StartLine),
						},
					},
				}
				prof.Location = append(prof.Location, locations[locationKey])
				nextLocID++
			}

			sampleLocations = append(sampleLocations, locations[locationKey])
		}

		// Add the sample to the profile with its locations and duration
		prof.Sample = append(prof.Sample, &profile.Sample{
			Location: sampleLocations,
			Value:    []int64{record.Duration().Nanoseconds(), 1},
		})
	}

	return prof
}
