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


package ai

import (
	"fmt"
	"sync"

	"github.com/poiesic/docquery/core"
)

// ModelInfo describes how to reach a registered model: the environment
// variable holding its API key, the service base URL, and the provider-side
// model identifier.
type ModelInfo struct {
	EnvVar  string
	BaseURL string
	Model   string
}

var (
	registryMu sync.RWMutex
	registry   = map[string]ModelInfo{
		"qwen-plus": {
			EnvVar:  "DASHSCOPE_API_KEY",
			BaseURL: "https://dashscope.aliyuncs.com/compatible-mode/v1",
			Model:   "qwen-plus",
		},
		"qwen-turbo": {
			EnvVar:  "DASHSCOPE_API_KEY",
			BaseURL: "https://dashscope.aliyuncs.com/compatible-mode/v1",
			Model:   "qwen-turbo",
		},
		"text-embedding-v2": {
			EnvVar:  "DASHSCOPE_API_KEY",
			BaseURL: "https://dashscope.aliyuncs.com/compatible-mode/v1",
			Model:   "text-embedding-v2",
		},
	}
)

// LookupModel resolves a model name against the registry.
// Unknown names return core.ErrUnknownModel; callers must not substitute a
// default.
func LookupModel(name string) (ModelInfo, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	info, ok := registry[name]
	if !ok {
		return ModelInfo{}, fmt.Errorf("%w: %q", core.ErrUnknownModel, name)
	}
	return info, nil
}

// RegisterModel adds or replaces a registry entry. Intended for startup
// wiring and tests; the registry is not meant to change while serving.
func RegisterModel(name string, info ModelInfo) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = info
}
