package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"ytscribe"
	"ytscribe/api"
	"ytscribe/config"
	"ytscribe/storage"
	"ytscribe/youtube"
)

const version = "0.1.0"

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "get":
		cmdGet(args)
	case "tracks":
		cmdTracks(args)
	case "serve":
		cmdServe(args)
	case "version":
		fmt.Println("ytscribe " + version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", command)
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `ytscribe - YouTube transcript resolver

Usage:
  ytscribe get [flags] <url-or-id>     Resolve a transcript and write it to a file
  ytscribe tracks [flags] <url-or-id>  List available transcript tracks
  ytscribe serve [flags]               Run the JSON API server
  ytscribe version                     Print the version
  ytscribe help                        Show this help message

Examples:
  ytscribe get https://www.youtube.com/watch?v=dQw4w9WgXcQ     # Write transcript_dQw4w9WgXcQ.txt
  ytscribe get dQw4w9WgXcQ -languages de,en                    # Prefer German, then English
  ytscribe get dQw4w9WgXcQ -json                               # Emit the result as JSON
  ytscribe tracks dQw4w9WgXcQ                                  # Show what's available
  ytscribe serve -addr :8080                                   # Serve POST /api/transcripts

For help on specific command: ytscribe <command> -h
`)
}

func cmdGet(args []string) {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	langStr := fs.String("languages", "", "Comma-separated language codes in preference order (e.g., en,es)")
	outDir := fs.String("o", "", "Directory to write the transcript artifact (default: config output_dir)")
	asJSON := fs.Bool("json", false, "Emit the result as JSON on stdout instead of writing a file")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ytscribe get [flags] <url-or-id>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	argv := fs.Args()
	if len(argv) == 0 {
		fmt.Fprintf(os.Stderr, "Error: missing url-or-id\n")
		fs.Usage()
		os.Exit(2)
	}

	input := argv[0]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	var languages []string
	if *langStr != "" {
		languages = config.ParseLanguages(*langStr)
	}

	resolver, err := ytscribe.NewResolverFromConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer resolver.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	fmt.Fprintf(os.Stderr, "Resolving transcript for %s...\n", input)
	result, err := resolver.Resolve(ctx, input, languages...)
	if err != nil {
		reportResolutionError(err)
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
			os.Exit(1)
		}
		return
	}

	dir := *outDir
	if dir == "" {
		dir = cfg.OutputDir
	}

	writer := storage.NewWriter(dir)
	path, err := writer.Write(result.VideoID, result.Text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing transcript: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Video ID:       %s\n", result.VideoID)
	fmt.Fprintf(os.Stderr, "Language:       %s\n", result.Language)
	fmt.Fprintf(os.Stderr, "Auto-generated: %v\n", result.Generated)
	fmt.Fprintf(os.Stderr, "Characters:     %d\n", result.CharCount)
	printMetadata(ctx, cfg, result.VideoID)
	fmt.Fprintf(os.Stderr, "Transcript saved to: %s\n", path)
}

// printMetadata enriches the summary with Data API metadata when an API
// key is configured. Failures only warn; the transcript is already won.
func printMetadata(ctx context.Context, cfg *config.Config, videoID string) {
	if cfg.APIKey == "" {
		return
	}

	meta, err := youtube.NewMetadataClient(ctx, cfg.APIKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create metadata client: %v\n", err)
		return
	}

	info, err := meta.Lookup(ctx, videoID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not fetch metadata: %v\n", err)
		return
	}

	fmt.Fprintf(os.Stderr, "Title:          %s\n", info.Title)
	fmt.Fprintf(os.Stderr, "Channel:        %s\n", info.ChannelTitle)
	if info.Duration > 0 {
		fmt.Fprintf(os.Stderr, "Duration:       %s\n", formatDuration(info.Duration))
	}
}

func cmdTracks(args []string) {
	fs := flag.NewFlagSet("tracks", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ytscribe tracks [flags] <url-or-id>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	argv := fs.Args()
	if len(argv) == 0 {
		fmt.Fprintf(os.Stderr, "Error: missing url-or-id\n")
		fs.Usage()
		os.Exit(2)
	}

	input := argv[0]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	resolver, err := ytscribe.NewResolverFromConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer resolver.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Fprintf(os.Stderr, "Fetching tracks for %s...\n", input)
	tracks, err := resolver.ListTracks(ctx, input)
	if err != nil {
		reportResolutionError(err)
		os.Exit(1)
	}

	if len(tracks) == 0 {
		fmt.Println("No transcript tracks available.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LANGUAGE\tNAME\tKIND")
	for _, track := range tracks {
		kind := "manual"
		if track.Generated {
			kind = "auto-generated"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", track.Language, track.Name, kind)
	}
	w.Flush()

	fmt.Fprintf(os.Stderr, "\nTotal: %d tracks\n", len(tracks))
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addrFlag := fs.String("addr", "", "Listen address (default: config listen_addr)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ytscribe serve [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	addr := *addrFlag
	if addr == "" {
		addr = cfg.ListenAddr
	}

	resolver, err := ytscribe.NewResolverFromConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer resolver.Close()

	var metadata *youtube.MetadataClient
	if cfg.APIKey != "" {
		metadata, err = youtube.NewMetadataClient(context.Background(), cfg.APIKey)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: metadata disabled: %v\n", err)
			metadata = nil
		}
	}

	server := api.NewServer(resolver, metadata)
	r := server.NewRouter()

	log.Printf("api: listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		fmt.Fprintf(os.Stderr, "Error: server stopped: %v\n", err)
		os.Exit(1)
	}
}

// reportResolutionError prints a failure in user terms, with a hint
// where one helps.
func reportResolutionError(err error) {
	switch {
	case errors.Is(err, youtube.ErrInvalidInput):
		var resErr *youtube.ResolutionError
		if errors.As(err, &resErr) {
			fmt.Fprintf(os.Stderr, "Error: %q is not a YouTube URL or video ID\n", resErr.Input)
			return
		}
		fmt.Fprintf(os.Stderr, "Error: not a YouTube URL or video ID\n")
	case errors.Is(err, youtube.ErrRateLimited):
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "YouTube is rate limiting requests from this address. Try again in a few minutes.\n")
	case errors.Is(err, youtube.ErrTranscriptsDisabled):
		fmt.Fprintf(os.Stderr, "Error: transcripts are disabled for this video\n")
	case errors.Is(err, youtube.ErrNoTranscript):
		fmt.Fprintf(os.Stderr, "Error: no transcript available in the requested languages\n")
		fmt.Fprintf(os.Stderr, "Run 'ytscribe tracks <url-or-id>' to see what is available.\n")
	default:
		fmt.Fprintf(os.Stderr, "Error fetching transcript: %v\n", err)
	}
}

func formatDuration(d time.Duration) string {
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}
