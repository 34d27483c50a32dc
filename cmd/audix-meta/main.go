/*
 * Copyright (c) 2026 Audix Project.
 * This software is part of the Audix audio toolkit.
 * This code is provided "as is", without warranty of any kind.
 */

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"audix/internal/codec"
)

func main() {
	fpPtr := flag.Bool("fingerprint", false, "Decode audio and include content fingerprint (slow)")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: ./audix-meta [-fingerprint] <file audio>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	info, err := codec.ReadInfo(path)
	if err != nil {
		fmt.Printf("[!] Error probe: %v\n", err)
		os.Exit(1)
	}

	out := struct {
		*codec.AudioInfo
		Fingerprint string `json:"fingerprint,omitempty"`
	}{AudioInfo: info}

	if *fpPtr {
		audio, err := codec.DecodeFile(path)
		if err != nil {
			fmt.Printf("[!] Error decode: %v\n", err)
			os.Exit(1)
		}
		out.Fingerprint = codec.Fingerprint(audio.Samples)
	}

	raw, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(raw))
}
