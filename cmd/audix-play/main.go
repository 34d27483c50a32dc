/*
 * Copyright (c) 2026 Audix Project.
 * This software is part of the Audix audio toolkit.
 * This code is provided "as is", without warranty of any kind.
 */

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/sirupsen/logrus"

	"audix/pkg/audioengine"
)

const (
	version_minor = 0
	version_major = 1
	app_name      = "Audix Player"
	general_usage = "Usage: ./audix-play [-v] <path file audio (.mp3/.wav/.flac/.ogg)>"
)

func main() {
	verbose := flag.Bool("v", false, "log verbose")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}

	if flag.NArg() < 1 {
		fmt.Println("========================================")
		fmt.Printf("%s version %d.%d\n", app_name, version_major, version_minor)
		fmt.Printf("\n%s\n", general_usage)
		return
	}

	player := audioengine.NewPlayer()
	if err := player.Play(flag.Arg(0)); err != nil {
		fmt.Printf("[!] Error play: %v\n", err)
		os.Exit(1)
	}

	// CTRL+C handler
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		player.Stop()
		fmt.Print("\033[?25h\n")
		os.Exit(0)
	}()

	// === STATUS TICKER ===
	stopTicker := make(chan struct{})
	go func() {
		t := time.NewTicker(250 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-stopTicker:
				return
			case <-t.C:
				playing, cur, dur := player.State()
				status := "PAUSED "
				if playing {
					status = "PLAYING"
				}
				fmt.Printf("\r▶ %s  %s / %s   ", status, clock(cur), clock(dur))
			}
		}
	}()

	rl, err := readline.NewEx(&readline.Config{Prompt: ""})
	if err != nil {
		fmt.Printf("[!] Error readline: %v\n", err)
		player.Stop()
		return
	}
	defer rl.Close()

	fmt.Printf("%s - commands: p=pause r=resume t=toggle s <sec>=seek q=quit\n", app_name)

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF / interrupt
			break
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "p":
			player.Pause()
		case "r":
			player.Resume()
		case "t":
			player.Toggle()
		case "s":
			if len(fields) < 2 {
				fmt.Println("\ns butuh target detik, contoh: s 42.5")
				continue
			}
			sec, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				fmt.Printf("\ntarget seek tidak valid: %s\n", fields[1])
				continue
			}
			player.Seek(sec)
		case "q":
			close(stopTicker)
			player.Stop()
			fmt.Println("\nStatus STOPPED")
			return
		default:
			fmt.Printf("\nperintah tidak dikenal: %s\n", fields[0])
		}
	}

	close(stopTicker)
	player.Stop()
}

func clock(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
