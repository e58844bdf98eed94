// Package tmdb provides a client for The Movie Database (TMDB) v3 API.
//
// The client issues exactly one composite read per title: the base
// movie or series resource with its related sub-resources appended via
// append_to_response. It never retries and never caches; callers that
// need either build it on top.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := tmdb.NewClient(
//		os.Getenv("TMDB_API_KEY"),
//		logger,
//		tmdb.WithTimeout(15*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	record, err := client.Details(ctx, tmdb.MediaKindMovie, "550")
//
// # Error Handling
//
// Failures are reported with three structured error types:
//
//   - NetworkError: transport failure or an unexpected HTTP status
//   - NotFoundError: unknown id or kind
//   - MalformedResponseError: the body could not be decoded
//
// Use errors.As to classify them:
//
//	var nf *tmdb.NotFoundError
//	if errors.As(err, &nf) {
//		// render a "not found" page
//	}
package tmdb
