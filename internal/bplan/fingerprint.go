package bplan

import (
	"encoding/hex"
	"os"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint hashes the concatenated contents of locPath and nwkPath with
// BLAKE2b-256, producing a stable identifier for "this exact pair of BPLAN
// files". internal/snapshot uses it to decide whether a materialised cache
// is stale without re-parsing either file.
//
// Returns an error only if either file cannot be read; a missing file is
// reported as *MissingFileError, consistent with Load.
func Fingerprint(locPath, nwkPath string) (string, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}

	for _, path := range []string{locPath, nwkPath} {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return "", missingFile(path)
			}
			return "", err
		}
		if _, err := h.Write(data); err != nil {
			return "", err
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
