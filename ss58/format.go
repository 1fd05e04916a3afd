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

package ss58

// Format definitions
var (
	FormatPolkadot = Format{
		Name:   "polkadot",
		Prefix: 0,
	}
	FormatKusama = Format{
		Name:   "kusama",
		Prefix: 2,
	}
	FormatKarura = Format{
		Name:   "karura",
		Prefix: 8,
	}
	FormatAcala = Format{
		Name:   "acala",
		Prefix: 10,
	}
	// Westend has no registered prefix of its own and uses the generic one
	FormatWestend = Format{
		Name:   "westend",
		Prefix: 42,
	}
	FormatSubstrate = Format{
		Name:   "substrate",
		Prefix: 42,
	}
	FormatInterlay = Format{
		Name:   "interlay",
		Prefix: 2032,
	}
	FormatKintsugi = Format{
		Name:   "kintsugi",
		Prefix: 2092,
	}

	FormatInvalid = Format{
		Name: "invalid",
	} // FormatInvalid is used as a return value for lookup functions when a format isn't found
)

// List of valid formats for use in lookup functions
var formats = []Format{
	FormatPolkadot,
	FormatKusama,
	FormatKarura,
	FormatAcala,
	FormatWestend,
	FormatSubstrate,
	FormatInterlay,
	FormatKintsugi,
}

// Formats returns the predefined formats
func Formats() []Format {
	ret := make([]Format, len(formats))
	copy(ret, formats)
	return ret
}

// FormatByName returns a predefined format by name
func FormatByName(name string) Format {
	for _, format := range formats {
		if format.Name == name {
			return format
		}
	}
	return FormatInvalid
}

// FormatByPrefix returns the first predefined format using the given prefix
func FormatByPrefix(prefix uint16) Format {
	for _, format := range formats {
		if format.Prefix == prefix {
			return format
		}
	}
	return FormatInvalid
}

// Format is a network's address format, identified by its SS58 prefix
type Format struct {
	Name   string
	Prefix uint16
}

func (f Format) String() string {
	return f.Name
}
