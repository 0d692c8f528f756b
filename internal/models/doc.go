// Package models defines the core domain models for the message board.
//
// # Models
//
//   - Group: a named collection of messages, the top-level unit of the board
//   - Message: a timestamped text entry belonging to exactly one group
//   - Selection: the title and seed messages handed to a group's message scope
//
// # Persistence Shape
//
// Models carry JSON tags because they are persisted as JSON arrays under
// string keys (see internal/storage). The tag names are the on-disk format
// and must not change:
//
//	[{"id": "...", "title": "...", "messages": [{"id": "...", "text": "...", "timestamp": "..."}]}]
//
// # Design Principles
//
//  1. **Insertion order is relevance order**: collections are slices, never maps
//  2. **No deletion**: groups and messages are only created or edited in place
//  3. **Value semantics**: stores hand out copies, callers cannot mutate store state
package models
