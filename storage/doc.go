// Copyright 2026 Blink Labs Software
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

// Package storage derives the keys under which a Substrate-based node stores
// module state.
//
// A storage item lives under the 32-byte prefix
// twox128(module) || twox128(item). Entries of a storage map append the
// hasher-specific fragment of the SCALE-encoded map key. The hasher must
// match the one the runtime declares for the item: a mismatch does not fail,
// it produces a key under which nothing is stored. MapItem therefore carries
// its Hasher alongside its name so the choice is made once, at declaration.
package storage
