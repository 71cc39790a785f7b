// Package httpapi implements the driven.Gateway port over the RAG
// backend's HTTP API.
//
// The backend's wire contract has drifted across deployments: two
// upload-ack shapes, and a legacy grouped document-list shape next to
// the flat array. All of that variance is absorbed here; nothing above
// this package ever branches on wire shape.
package httpapi
