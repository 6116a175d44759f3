// Package dnsmock starts UDP DNS servers backed by a loose, declarative
// record dictionary, for test suites that need a DNS responder to point a
// resolver at instead of the real internet.
//
//	srv, err := dnsmock.StartServer(dnsmock.WithRecords(map[string]map[string]any{
//		"example.com": {"a": []string{"127.0.0.1"}},
//	}))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer srv.Stop()
package dnsmock
