/*
 * Copyright (c) 2026 Audix Project.
 * This software is part of the Audix audio toolkit.
 * This code is provided "as is", without warranty of any kind.
 */

package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"

	"audix/internal/codec"
)

func main() {
	inPtr := flag.String("in", "", "Source audio path (.mp3/.wav/.flac/.ogg)")
	outPtr := flag.String("out", "", "Output WAV path")
	startPtr := flag.Float64("start", 0, "Start time (seconds)")
	endPtr := flag.Float64("end", 0, "End time (seconds)")
	opusPtr := flag.Bool("opus", false, "Also export raw opus frames next to output (48kHz input only)")
	flag.Parse()

	if *inPtr == "" || *outPtr == "" {
		fmt.Println("Usage: ./audix-trim -in input.mp3 -out output.wav -start 10 -end 95 [-opus]")
		os.Exit(1)
	}

	params, err := codec.NewTrimParams(*startPtr, *endPtr)
	if err != nil {
		fmt.Printf("[!] %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("[1/3] Decoding %s...\n", *inPtr)
	audio, err := codec.DecodeFile(*inPtr)
	if err != nil {
		fmt.Printf("[!] Error decode: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("[2/3] Trimming %.2fs - %.2fs (of %.2fs)...\n",
		params.StartSeconds, params.EndSeconds, audio.DurationSeconds())
	trimmed, err := codec.Trim(audio, params)
	if err != nil {
		fmt.Printf("[!] Error trim: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("[3/3] Encoding %s...\n", *outPtr)
	if err := codec.EncodeWAV(trimmed, *outPtr); err != nil {
		fmt.Printf("[!] Error encode: %v\n", err)
		os.Exit(1)
	}

	if *opusPtr {
		frames, err := codec.EncodeOpusFrames(trimmed)
		if err != nil {
			fmt.Printf("[!] Error opus export: %v\n", err)
			os.Exit(1)
		}
		opusPath := *outPtr + ".opusraw"
		if err := writeOpusRaw(opusPath, frames); err != nil {
			fmt.Printf("[!] Error opus write: %v\n", err)
			os.Exit(1)
		}
		// sanity decode: semua frame harus bisa dibuka kembali
		if _, err := codec.DecodeOpusFrames(frames, trimmed.Channels); err != nil {
			fmt.Printf("[!] Opus verify failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("[+] Opus preview: %d frames (20ms each) -> %s\n", len(frames), opusPath)
	}

	fmt.Printf("[OK] %.2f sec written\n", trimmed.DurationSeconds())
}

// writeOpusRaw menulis frame opus mentah dengan prefix panjang uint16
// little-endian per frame.
func writeOpusRaw(path string, frames [][]byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	for _, frame := range frames {
		if err := binary.Write(f, binary.LittleEndian, uint16(len(frame))); err != nil {
			f.Close()
			return err
		}
		if _, err := f.Write(frame); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}
