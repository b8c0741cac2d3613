// piprs-keygen generates sender keypairs and signs payment envelopes.
//
// Generate a keypair:
//
//	piprs-keygen
//	piprs-keygen -alg dilithium3
//
// Sign an envelope (raw bytes on stdin) with an ed25519 seed:
//
//	piprs-keygen -sign -seed <base64 seed> < envelope.bin
//
// The signing output is the JSON body POST /payments expects.
package main

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/piprs/piprs/keys"
)

func main() {
	fs := flag.NewFlagSet("piprs-keygen", flag.ExitOnError)
	alg := fs.String("alg", "ed25519", "key algorithm: ed25519 or dilithium3")
	sign := fs.Bool("sign", false, "sign an envelope read from stdin")
	seed := fs.String("seed", "", "base64 ed25519 seed (with -sign)")

	_ = fs.Parse(os.Args[1:])

	if *sign {
		if err := signEnvelope(*seed); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	if err := generate(*alg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func generate(alg string) error {
	switch alg {
	case "ed25519":
		pub, priv, err := keys.GenerateEd25519(nil)
		if err != nil {
			return err
		}
		fmt.Printf("key:  %s\n", keys.Encode(pub))
		fmt.Printf("seed: %s\n", keys.Encode(priv.Seed()))
		return nil
	case "dilithium3":
		pk, sk, err := keys.GenerateDilithium3(nil)
		if err != nil {
			return err
		}
		pub, err := pk.MarshalBinary()
		if err != nil {
			return err
		}
		priv, err := sk.MarshalBinary()
		if err != nil {
			return err
		}
		fmt.Printf("key:     %s\n", keys.Encode(pub))
		fmt.Printf("private: %s\n", keys.Encode(priv))
		return nil
	default:
		return fmt.Errorf("unsupported algorithm %q", alg)
	}
}

func signEnvelope(seedB64 string) error {
	if seedB64 == "" {
		return fmt.Errorf("-seed is required with -sign")
	}
	seed, err := base64.StdEncoding.DecodeString(seedB64)
	if err != nil {
		return fmt.Errorf("seed is not valid base64: %w", err)
	}
	if len(seed) != ed25519.SeedSize {
		return fmt.Errorf("seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)

	envelope, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}
	if len(envelope) == 0 {
		return fmt.Errorf("empty envelope on stdin")
	}

	sig := keys.SignEnvelope(envelope, priv)
	body := map[string]string{
		"key":       keys.Encode(priv.Public().(ed25519.PublicKey)),
		"signature": keys.Encode(sig),
		"ipr":       base64.StdEncoding.EncodeToString(envelope),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(body)
}
