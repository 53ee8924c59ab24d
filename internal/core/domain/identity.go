package domain

import (
	"crypto/md5" //nolint:gosec // ids must match the remote store's existing records
	"encoding/hex"
	"fmt"
	"path"
	"strconv"
)

// productNumberWidth is the zero-padded width of numeric product numbers
// inside derived media filenames.
const productNumberWidth = 9

func hashHex(s string) string {
	sum := md5.Sum([]byte(s)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// NewMediaID derives the media id from a filename (or a URL ending in one).
// The same filename always yields the same id, across calls and processes.
// The filename must carry an extension: the remote store keys media identity
// on the (stem, extension) pair, and the extension is the only validity
// signal available here.
func NewMediaID(filename string) (string, error) {
	name := path.Base(filename)
	if path.Ext(name) == "" {
		return "", fmt.Errorf("media filename %q must have an extension: %w", filename, ErrInvalidInput)
	}
	return hashHex(name), nil
}

// MediaFilename builds the canonical, store-wide unique filename for a
// product picture: the product number (numeric ones zero-padded to 9 digits),
// an underscore, the position, and the extension taken from the source URL.
func MediaFilename(productNumber string, position int, url string) string {
	return fmt.Sprintf("%s_%d%s", padProductNumber(productNumber), position, path.Ext(url))
}

// ShardedFolderPath computes the canonical media folder for a product
// number beneath the given root: the md5 of the product number split into
// segments of 2/2/2/26 characters. The fan-out bounds any single folder to a
// manageable entry count (~16.7 million leaf buckets) for an unbounded
// catalogue.
func ShardedFolderPath(root FolderPath, productNumber string) FolderPath {
	h := hashHex(productNumber)
	return root.Join(h[0:2], h[2:4], h[4:6], h[6:])
}

// NewProductID derives the product id from the product number.
func NewProductID(productNumber string) string {
	return hashHex(productNumber)
}

// NewProductMediaID derives the product-media relation id from the product id
// and the picture position. The same pair always yields the same id, so
// re-creating a relation after a partial failure is safe.
func NewProductMediaID(productID string, position int) string {
	return hashHex(productID + strconv.Itoa(position))
}

// padProductNumber left-pads purely numeric product numbers with zeros to a
// fixed width. Non-numeric product numbers are used verbatim.
func padProductNumber(productNumber string) string {
	if len(productNumber) >= productNumberWidth || productNumber == "" {
		return productNumber
	}
	for _, r := range productNumber {
		if r < '0' || r > '9' {
			return productNumber
		}
	}
	padded := make([]byte, 0, productNumberWidth)
	for i := len(productNumber); i < productNumberWidth; i++ {
		padded = append(padded, '0')
	}
	return string(padded) + productNumber
}
