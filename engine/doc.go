// Package engine implements the asynchronous scheduling layer: a
// fixed-size worker pool draining two priority heaps (compression first,
// then decompression), a byte-bounded LRU result cache consulted on keyed
// compression requests, and single-assignment result handles.
//
// A Manager is created stopped:
//
//	mgr, err := engine.New(engine.WithWorkers(4))
//	if err != nil {
//		// handle err
//	}
//	mgr.Start()
//	defer mgr.Stop()
//
//	h, err := mgr.Compress(data, format.AlgorithmGzip, format.PriorityHigh, "page:42")
//	if err != nil {
//		// handle err
//	}
//	out, err := h.Wait(ctx)
//
// Within one priority level tasks complete in submission order; across
// levels higher priorities are always dequeued first.
package engine
