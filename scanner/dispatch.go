// scanner/dispatch.go
package scanner

import (
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"
)

var defaultNumWorkers = runtime.NumCPU()

// Delivery carries one scanned file to the consumer: its matched outcomes in
// line order and, when the scan failed, the failure. Outcomes produced before
// a mid-file failure are kept.
type Delivery struct {
	Path      string
	Outcomes  []MatchOutcome
	Evaluated int // In-window lines the strategy ran on
	Err       *FileError
}

// Dispatcher runs one Scanner per file and merges the results.
type Dispatcher struct {
	Workers    int         // Pool size in recursive mode; runtime.NumCPU() when <= 0
	Opener     Opener      // OSOpener when nil
	Discoverer *Discoverer // A zero Discoverer rooted at "." when nil
	Logger     Logger
}

func (d *Dispatcher) workers() int {
	if d.Workers <= 0 {
		return defaultNumWorkers
	}
	return d.Workers
}

func (d *Dispatcher) opener() Opener {
	if d.Opener == nil {
		return OSOpener{}
	}
	return d.Opener
}

func (d *Dispatcher) logger() Logger {
	if d.Logger == nil {
		return nopLogger{}
	}
	return d.Logger
}

// ScanOne scans a single file synchronously, passing every outcome to emit in
// line order.
func (d *Dispatcher) ScanOne(path string, spec *MatchSpec, emit func(MatchOutcome)) error {
	return ScanFile(d.opener(), path, spec, emit)
}

// Dispatch discovers the files named by filename under the discoverer's root
// and scans them on a pool of workers. Each worker finishes a file before
// taking the next one and sends exactly one Delivery per file. Deliveries from
// different workers arrive in no particular order. The channel is closed once
// discovery and every scan are done.
//
// Only a malformed glob is returned as an error, before any worker starts.
func (d *Dispatcher) Dispatch(filename string, spec *MatchSpec) (<-chan Delivery, error) {
	pattern, err := GlobPattern(filename)
	if err != nil {
		return nil, err
	}

	discoverer := d.Discoverer
	if discoverer == nil {
		discoverer = &Discoverer{Logger: d.Logger}
	}
	log := d.logger()
	numWorkers := d.workers()

	tasks := make(chan ScanTask, numWorkers*DefaultQueueDepth)
	deliveries := make(chan Delivery, numWorkers*DefaultQueueDepth)

	var g errgroup.Group
	g.Go(func() error {
		defer close(tasks)
		found := 0
		err := discoverer.Walk(pattern,
			func(path string) {
				found++
				tasks <- ScanTask{Path: path, Spec: spec}
			},
			func(fe *FileError) {
				deliveries <- Delivery{Path: fe.Path, Err: fe}
			})
		log.Debugf("Discovered %d files matching %s", found, pattern)
		return err
	})

	for i := 0; i < numWorkers; i++ {
		workerID := i
		g.Go(func() error {
			for task := range tasks {
				log.Debugf("Worker %d: scanning %s", workerID, task.Path)
				deliveries <- d.scanTask(task)
			}
			return nil
		})
	}

	go func() {
		if err := g.Wait(); err != nil {
			log.Warnf("Discovery stopped early: %v", err)
		}
		close(deliveries)
	}()

	return deliveries, nil
}

func (d *Dispatcher) scanTask(task ScanTask) Delivery {
	delivery := Delivery{Path: task.Path}
	err := ScanFile(d.opener(), task.Path, task.Spec, func(o MatchOutcome) {
		delivery.Evaluated++
		if o.Matched {
			delivery.Outcomes = append(delivery.Outcomes, o)
		}
	})
	if err != nil {
		var fe *FileError
		if !errors.As(err, &fe) {
			fe = &FileError{Path: task.Path, Op: "read", Err: err}
		}
		delivery.Err = fe
	}
	return delivery
}
