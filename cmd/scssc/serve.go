package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/titpetric/scssgo"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve <dir>",
	Short: "Serve a directory of .scss files, compiling them to CSS on request",
	Args:  cobra.ExactArgs(1),
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "listen port")
}

func runServe(cmd *cobra.Command, args []string) error {
	dir := args[0]
	handler := scssgo.NewHandler(os.DirFS(dir), "/")

	mux := http.NewServeMux()
	mux.Handle("/", withRequestID(handler))

	addr := fmt.Sprintf(":%d", servePort)
	log.Printf("scssc: serving %s on %s", dir, addr)
	return http.ListenAndServe(addr, mux)
}

// withRequestID tags every request with a correlation id, logged alongside
// its method and path — the same per-connection uuid.New() idiom
// github.com/fredcamaral/slicli's websocket hub uses to label each live
// client in its own logs.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.New().String()
		log.Printf("[%s] %s %s", reqID, r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
