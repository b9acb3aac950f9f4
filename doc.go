// Package funnel provides a bounded-concurrency task dispatcher.
//
// Callers submit independent units of work; the dispatcher runs at most a
// configured number of them simultaneously and queues the remainder in FIFO
// order. Per-task and all-complete handlers deliver completion events, and
// Join lets any goroutine block, optionally with a timeout, until every
// submitted task has finished.
//
// End-users interact with the dispatcher via the Service façade exposed by
// the root package:
//
//	svc := funnel.New(4)
//	svc.OnItemComplete(func(state interface{}, outcome funnel.Outcome) {
//		log.Printf("%v: %v", state, outcome.Err)
//	})
//	svc.Submit(loadUsers, "users").Submit(loadOrders, "orders")
//	svc.Join()
//
// Scheduling is delegated to an injected executor (see service/executor);
// the default runs every task on its own goroutine, which the Go runtime
// multiplexes onto a shared pool of OS threads. A task, once started, cannot
// be cancelled; Join's timeout bounds only the wait, never the tasks.
//
// For more details see the README and individual sub-packages.
package funnel
