// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "errors"

// Validation errors, surfaced synchronously before any index mutation.
var (
	// ErrUnsupportedFileType indicates an upload with a file type the
	// splitter cannot handle.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrEmptyFilePath indicates a job without a file path.
	ErrEmptyFilePath = errors.New("file path cannot be empty")

	// ErrEmptyOwnerKey indicates a session request without an owner key.
	ErrEmptyOwnerKey = errors.New("owner key cannot be empty")

	// ErrEmptyQuestion indicates a query with no question text.
	ErrEmptyQuestion = errors.New("question cannot be empty")
)

// Saturation and availability errors.
var (
	// ErrSystemBusy indicates the queued-or-in-flight job count exceeds
	// the admission ceiling. The caller should retry later.
	ErrSystemBusy = errors.New("system busy")

	// ErrUpstreamUnavailable indicates the embedding provider or language
	// model handle is not ready. Jobs fail fast and sessions are evicted
	// so the next request retries construction.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrDuplicateFile indicates an upload whose content hash already
	// exists in the same parent scope.
	ErrDuplicateFile = errors.New("duplicate file")
)

// Configuration errors. Applying an invalid configuration leaves the
// previous, still-valid configuration active.
var (
	// ErrUnknownModel indicates a model name absent from the registry.
	ErrUnknownModel = errors.New("unknown model name")

	// ErrUnsupportedSplitWay indicates an unrecognized splitting strategy.
	ErrUnsupportedSplitWay = errors.New("unsupported split strategy")

	// ErrInvalidSplitPolicy indicates out-of-range split length or overlap.
	ErrInvalidSplitPolicy = errors.New("invalid split policy")

	// ErrInvalidConfig indicates a configuration that failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)
