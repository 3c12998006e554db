// Package watcher re-mines a transaction dataset whenever it changes on disk.
//
// The Watcher subscribes to fsnotify events for the dataset's directory,
// so editors that save by rename are still seen. Bursts of writes are
// collapsed by a debounce window before the dataset is read and mined, and
// each result (or error) is handed to a Sink.
//
// Key features:
//   - fsnotify directory watch filtered to a single file
//   - Debounced re-mining (500ms by default)
//   - Initial mine on Start
//   - Daemon mode support with PID file management
//   - Graceful shutdown with SIGTERM/SIGINT handling
//
// Example usage:
//
//	mine := func(path string) (*apriori.Result, error) {
//		txs, err := dataset.ReadFile(path, dataset.Options{})
//		if err != nil {
//			return nil, err
//		}
//		return apriori.Mine(txs, apriori.Config{MinSupport: 0.3, MinConfidence: 0.6})
//	}
//	sink := func(path string, res *apriori.Result, err error) {
//		if err != nil {
//			log.Print(err)
//			return
//		}
//		fmt.Print(output.RenderRuleTable(res.Rules))
//	}
//
//	w, err := watcher.New("baskets.txt", mine, sink)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := w.Start(); err != nil {
//		log.Fatal(err)
//	}
//	defer w.Stop()
package watcher
