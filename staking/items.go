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

package staking

import "github.com/blinklabs-io/substate/storage"

// Module names
const (
	ModuleStaking  = "Staking"
	ModuleSession  = "Session"
	ModuleBalances = "Balances"
)

// Storage items read by this package's consumers. Map hashers match the
// declarations in the runtime and must not be changed independently of it
var (
	// ActiveEra holds an ActiveEraInfo
	ActiveEra = storage.ValueItem{Module: ModuleStaking, Name: "ActiveEra"}
	// CurrentEra holds the latest planned EraIndex
	CurrentEra = storage.ValueItem{Module: ModuleStaking, Name: "CurrentEra"}
	// QueuedElected holds the ElectionResult for the next session
	QueuedElected = storage.ValueItem{Module: ModuleStaking, Name: "QueuedElected"}
	// Validators maps a stash to its ValidatorPrefs
	Validators = storage.MapItem{
		Module: ModuleStaking,
		Name:   "Validators",
		Hasher: storage.Twox64Concat,
	}
	// Nominators maps a stash to its Nominations
	Nominators = storage.MapItem{
		Module: ModuleStaking,
		Name:   "Nominators",
		Hasher: storage.Twox64Concat,
	}
	// Bonded maps a stash to its controller account
	Bonded = storage.MapItem{
		Module: ModuleStaking,
		Name:   "Bonded",
		Hasher: storage.Twox64Concat,
	}
	// Ledger maps a controller to its StakingLedger
	Ledger = storage.MapItem{
		Module: ModuleStaking,
		Name:   "Ledger",
		Hasher: storage.Blake2b128Concat,
	}

	// CurrentIndex holds the current SessionIndex
	CurrentIndex = storage.ValueItem{Module: ModuleSession, Name: "CurrentIndex"}
	// SessionValidators holds the validator set of the current session
	SessionValidators = storage.ValueItem{Module: ModuleSession, Name: "Validators"}

	// Locks maps an account to its BalanceLocks
	Locks = storage.MapItem{
		Module: ModuleBalances,
		Name:   "Locks",
		Hasher: storage.Blake2b128Concat,
	}
)
