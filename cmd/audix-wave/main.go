package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"audix/internal/codec"
)

func main() {
	inPtr := flag.String("in", "", "Source audio path")
	peaksPtr := flag.Int("peaks", codec.DefaultNumPeaks, "Number of min/max peak pairs")
	outPtr := flag.String("json", "", "Output JSON path (default stdout)")
	spectroPtr := flag.String("spectrogram", "", "Also render a spectrogram PNG to this path")
	flag.Parse()

	if *inPtr == "" {
		fmt.Println("Usage: ./audix-wave -in input.mp3 [-peaks 2000] [-json out.json] [-spectrogram out.png]")
		os.Exit(1)
	}

	if *spectroPtr != "" {
		audio, err := codec.DecodeFile(*inPtr)
		if err != nil {
			fmt.Printf("[!] Error decode: %v\n", err)
			os.Exit(1)
		}
		img, err := codec.Spectrogram(audio.Samples)
		if err != nil {
			fmt.Printf("[!] Error spectrogram: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*spectroPtr, img, 0o644); err != nil {
			fmt.Printf("[!] Error write: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("[OK] spectrogram -> %s\n", *spectroPtr)
	}

	peaks, err := codec.ExtractPeaks(*inPtr, *peaksPtr)
	if err != nil {
		fmt.Printf("[!] Error peaks: %v\n", err)
		os.Exit(1)
	}

	raw, err := json.Marshal(peaks)
	if err != nil {
		fmt.Printf("[!] Error json: %v\n", err)
		os.Exit(1)
	}

	if *outPtr == "" {
		fmt.Println(string(raw))
		return
	}
	if err := os.WriteFile(*outPtr, raw, 0o644); err != nil {
		fmt.Printf("[!] Error write: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("[OK] %d peaks -> %s\n", peaks.NumPeaks, *outPtr)
}
