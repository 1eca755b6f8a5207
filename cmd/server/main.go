package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"log"
	"net"
	"os"

	"ascii-donut/internal/anim"
	"ascii-donut/internal/config"
	"ascii-donut/internal/server"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	cfg := config.Default()
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		log.Fatalf("Environment: %v", err)
	}
	cfg.Frames = 0 // sessions come and go; the donut never stops

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flag.StringVar(&cfg.HostKey, "host-key", cfg.HostKey, "host key path, generated when missing")
	flag.IntVar(&cfg.FPS, "fps", cfg.FPS, "frames per second")
	flag.StringVar(&cfg.Ramp, "ramp", cfg.Ramp, "glyphs from darkest to brightest")
	flag.BoolVar(&cfg.Color, "color", cfg.Color, "shade glyphs with 24-bit color")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config error: %v", err)
	}
	log.Printf("Preset %s: r1=%v n1=%d r2=%v n2=%d k1=%v k2=%v at %d fps",
		cfg.Preset, cfg.R1, cfg.N1, cfg.R2, cfg.N2, cfg.K1, cfg.K2, cfg.FPS)

	// Generate host key if it doesn't exist
	if err := ensureHostKey(cfg.HostKey); err != nil {
		log.Fatalf("Host key error: %v", err)
	}

	// Start animation loop in background
	loop := anim.NewLoop(cfg.Schedule(), cfg.FPS)
	go loop.Run()
	defer loop.Stop()

	// Start SSH server (blocks)
	sshServer, err := server.NewSSHServer(cfg, loop)
	if err != nil {
		log.Fatalf("SSH server error: %v", err)
	}
	_, port, _ := net.SplitHostPort(cfg.Addr)
	log.Printf("Starting donut server, connect with: ssh -t -p %s localhost", port)
	if err := sshServer.Start(); err != nil {
		log.Fatalf("SSH server error: %v", err)
	}
}

func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // key already exists
	}

	log.Println("Generating new host key...")
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	pemBlock := &pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: keyBytes,
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return pem.Encode(f, pemBlock)
}
