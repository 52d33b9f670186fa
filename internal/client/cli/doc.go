// Package cli provides the interactive DogBox command-line client.
//
// It wires configuration, the registry client, the content store and the
// file services, then runs a REPL over the local view:
//
//   - list the files as cards (name, size, upload time)
//   - upload a local file under its base name
//   - print a retrieval URL or download content to a local path
//   - delete a file
//   - refresh the view from the registry
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
