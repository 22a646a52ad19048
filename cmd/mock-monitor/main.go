package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Zaidfarooqui01/EagleEye-AI-Smart-Attendance-Exam-Supervision/internal/mockmonitor"
)

func main() {
	host := flag.String("host", "127.0.0.1", "Listen host")
	port := flag.Int("port", 8080, "Listen port")
	interval := flag.Duration("interval", 100*time.Millisecond, "Frame emission interval")
	flag.Parse()

	srv := mockmonitor.NewServer(*interval)

	mux := http.NewServeMux()
	srv.SetupRoutes(mux)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutting down...")
		srv.Generator().Stop()
		os.Exit(0)
	}()

	if err := mockmonitor.ListenAndServe(*host, *port, mux); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
