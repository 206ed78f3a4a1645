package main

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	_ "net/http/pprof" // profiling

	_ "github.com/joho/godotenv/autoload" // automatically load .env files

	"github.com/tujuhre12/vlist/internal/cmd"
)

const defaultProfileAddr = "localhost:6060"

func main() {
	if addr := profileAddr(); addr != "" {
		go func() {
			slog.Info("Serving pprof", "addr", addr)
			if httpErr := http.ListenAndServe(addr, nil); httpErr != nil {
				slog.Error("Failed to pprof listen", "error", httpErr)
			}
		}()
	}

	cmd.Execute()
}

// profileAddr returns the pprof address selected by VLIST_PROFILE. Any value
// enables profiling; a host:port value also picks the address.
func profileAddr() string {
	v := os.Getenv("VLIST_PROFILE")
	switch {
	case v == "":
		return ""
	case strings.Contains(v, ":"):
		return v
	default:
		return defaultProfileAddr
	}
}
