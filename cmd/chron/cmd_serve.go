package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/websocket"

	"github.com/chronoline/chronoline/pkg/solver"
	"github.com/chronoline/chronoline/pkg/worker"
)

// cmdServe exposes the solver to an out-of-process UI over WebSocket.
// Each connection gets its own worker host: the host emits {"type":"ready"}
// once, then answers solve requests, discarding results whose request_id
// has been superseded — the UI just keeps sending its latest state.
func (a *app) cmdServe(args []string) int {
	flags := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := flags.String("addr", "127.0.0.1:7401", "listen address")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	http.HandleFunc("/solve", serveSolve)
	fmt.Printf("chron: solver listening on ws://%s/solve\n", *addr)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		fmt.Fprintf(os.Stderr, "chron: serve: %v\n", err)
		return 1
	}
	return 0
}

var upgrader = websocket.Upgrader{
	// The UI host may be served from anywhere (file://, a dev server);
	// the endpoint binds to loopback by default instead.
	CheckOrigin: func(*http.Request) bool { return true },
}

func serveSolve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	host := worker.NewHost(solver.Solve)
	defer host.Close()

	// Writer: forward every surviving host response, ready signal first.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for resp := range host.Results() {
			if err := conn.WriteJSON(resp); err != nil {
				return
			}
		}
	}()

	// Reader: every well-formed solve request goes to the host; the host
	// handles superseding. Malformed frames get an immediate error reply.
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var req worker.Request
		if err := json.Unmarshal(data, &req); err != nil || req.Type != worker.MsgSolve {
			msg := "malformed request"
			if err != nil {
				msg = fmt.Sprintf("malformed request: %v", err)
			}
			if err := conn.WriteJSON(worker.Response{Type: worker.MsgError, Error: msg}); err != nil {
				return
			}
			continue
		}
		host.SubmitTagged(req.RequestID, req.Input)
		select {
		case <-done:
			return
		default:
		}
	}
}
