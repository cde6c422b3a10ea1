// Package domain defines the identity data model and the contracts shared
// across the app. It contains plain types (payloads, keys, blobs) and
// interfaces (keyrings, stores, services) only.
package domain
