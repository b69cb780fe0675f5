package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	digest, err := Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if digest == "s3cret" {
		t.Fatalf("digest equals plaintext")
	}
	if !Verify("s3cret", digest) {
		t.Fatalf("Verify rejected correct password")
	}
	if Verify("wrong", digest) {
		t.Fatalf("Verify accepted wrong password")
	}
}

func TestHashIsSaltedPerCall(t *testing.T) {
	a, err := Hash("same-input")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	b, err := Hash("same-input")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same plaintext are identical")
	}
}

func TestVerifyMalformedDigest(t *testing.T) {
	if Verify("anything", "not-a-bcrypt-digest") {
		t.Fatalf("Verify accepted malformed digest")
	}
	if Verify("anything", "") {
		t.Fatalf("Verify accepted empty digest")
	}
}
