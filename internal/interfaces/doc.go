// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access
//
//   - BookStore: fetch, insert, save and delete books (internal/services/interfaces.go)
//   - BookReader: read a single book by ID (internal/services/interfaces.go)
//
// ## Screens
//
// Every screen is a store.Reducer over its own State and Action types:
//
//   - booklist: list, filter, sort and two-step delete
//   - newbook: the creation sheet
//   - editbook: the edit screen with date adjustments on status change
//   - container: routes between the three screens above
//   - home: tab selection around the container
//
// Actions are closed sets: each package declares an unexported marker method
// and only its own types implement it. Delegate actions (ConfirmationRequested,
// OpenBook, DidCreate, Completed, Dismiss) are how a child screen talks to
// its parent.
//
// ## Transport
//
//   - AppStore: what the HTTP controllers need from the application store
//     (internal/http/helpers.go)
//
// # Adding a New Screen
//
//  1. Create a package under internal/features/ with State, Action and a
//     Reducer that takes its dependencies by constructor.
//
//  2. Give the parent a routing action and lift the child's effect:
//
//     case Settings:
//         return store.Map(r.settings.Reduce(&state.Settings, a.Action), func(sa settings.Action) Action {
//             return Settings{Action: sa}
//         })
//
//  3. Add a compile-time check to checks.go.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
