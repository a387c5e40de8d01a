package exporter

import (
	"encoding/json"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
)

// EncodeDocument renders a document as canonical Extended JSON. Every BSON type,
// int32 versus int64 versus double included, survives a text round trip.
func EncodeDocument(doc bson.Raw) ([]byte, error) {
	return bson.MarshalExtJSON(doc, true, false)
}

// DecodeDocument parses one Extended JSON document (relaxed or canonical).
func DecodeDocument(data []byte) (bson.D, error) {
	var doc bson.D
	if err := bson.UnmarshalExtJSON(data, false, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// DecodeBackup parses a backup file: a JSON array of Extended JSON documents.
func DecodeBackup(r io.Reader) ([]bson.D, error) {
	var raws []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raws); err != nil {
		return nil, fmt.Errorf("backup is not a JSON array: %w", err)
	}

	docs := make([]bson.D, 0, len(raws))
	for i, raw := range raws {
		doc, err := DecodeDocument(raw)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
