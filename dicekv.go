// Package dicekv is a Go client for the DiceKV key-value server.
//
// The client speaks the server's binary request/response protocol over a
// single persistent TCP connection. Commands are sent as length-prefixed
// token frames and replies come back as tagged values (string, integer,
// float, boolean, null, error, array, map) exposed through the Value type.
//
// Example:
//
//	import "github.com/dicekv/dicekv-go"
//
//	client, err := dicekv.New("localhost", 7379)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	reply, err := client.FireString("PING")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pong, _ := reply.Str()
//	fmt.Println(pong) // PONG
//
// A Client owns exactly one command connection and serializes callers so at
// most one request is in flight at a time. For concurrency, use one Client
// per goroutine; the library does not pool connections.
package dicekv

// Version is the current client version.
const Version = "0.2.0"
