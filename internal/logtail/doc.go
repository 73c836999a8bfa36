// Package logtail reads the last lines of a log file.
//
// # Overview
//
// tailpane seeds a panel with the end of a file before following it. Read
// extracts the last N lines without loading the entire file into memory;
// Tail additionally returns the byte offset where reading stopped so the
// follower can continue from there.
//
// Example usage:
//
//	lines, offset, err := logtail.Tail("/var/log/syslog", 5000)
//	if err != nil {
//		return err
//	}
//
// # Ring Buffer Algorithm
//
// The read implementation uses a circular buffer of size maxLines:
//
//	1. Allocate ring buffer of size maxLines
//	2. For each line in file:
//	   - Store line at current index
//	   - Increment index (wrapping at maxLines)
//	   - Track total lines seen
//	3. If total < maxLines:
//	   - Return first 'count' entries from buffer
//	4. If total >= maxLines:
//	   - Return buffer starting from current index (oldest line)
//
// A non-positive maxLines matches an unbounded backlog and returns every
// line.
//
// # Performance Considerations
//
//   - Buffer size: 64KB initial, 1MB max line length
//   - Memory usage: O(maxLines × average line length)
//   - Time complexity: O(n) where n = total lines in file
//
// # Error Handling
//
// Read returns nil, nil for non-existent files (graceful degradation).
// Other errors (permission denied, I/O errors) are returned wrapped.
package logtail
