package ir

import (
	"crypto/sha256"
	"encoding/hex"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainSignature = "glgen/signature/v1"
	DomainArtifact  = "glgen/artifact/v1"
	DomainPlan      = "glgen/plan/v1"
	DomainRegistry  = "glgen/registry/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SignatureKey returns a stable digest of the command's full signature.
// Two commands have the same key iff they are structurally equal after NFC
// normalisation.
func SignatureKey(c Command) string {
	return hashWithDomain(DomainSignature, CanonicalSignature(c))
}

// ArtifactDigest returns the digest recorded for a generated artifact.
func ArtifactDigest(data []byte) string {
	return hashWithDomain(DomainArtifact, data)
}

// PlanDigest returns the digest of a plan's canonical serialisation.
func PlanDigest(canonical []byte) string {
	return hashWithDomain(DomainPlan, canonical)
}

// RegistryDigest returns the digest of a registry document's raw bytes.
func RegistryDigest(data []byte) string {
	return hashWithDomain(DomainRegistry, data)
}
