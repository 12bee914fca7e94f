package main

import (
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	cryptoRand "crypto/rand"
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"
	"testing"

	wp_gammazero "github.com/gammazero/workerpool"
	wp_ants "github.com/panjf2000/ants/v2"

	"github.com/maurice2k/shardqueue"
)

var wg sync.WaitGroup

var aesKey = []byte("0123456789ABCDEF")
var oneKiloByte = []byte(strings.Repeat("a", 1024))

var runs = []int{10, 100, 500, 1000}

func taskHandler() {
	encryptCBC(oneKiloByte, aesKey)
	wg.Done()
}

func BenchmarkGoRoutineWithoutWorkerpool(b *testing.B) {
	runtime.GC()
	b.ResetTimer()

	for _, parallelism := range runs {
		b.Run(fmt.Sprintf("%4d", parallelism), func(b *testing.B) {
			b.ReportAllocs()
			b.SetParallelism(parallelism)
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					wg.Add(1)
					go taskHandler()
				}
			})
		})
	}

	wg.Wait()
}

// BenchmarkShardedQueuePool measures the native sharded-queue pool this
// module builds, the one the other backends below are compared against.
func BenchmarkShardedQueuePool(b *testing.B) {
	runtime.GC()

	shards := runtime.GOMAXPROCS(0)
	p := shardqueue.NewPool(shardqueue.WithWorkers(shards))
	p.Start()

	b.ResetTimer()

	for _, parallelism := range runs {
		b.Run(fmt.Sprintf("[%d]-%4d", shards, parallelism), func(b *testing.B) {
			b.ReportAllocs()
			b.SetParallelism(parallelism)
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					wg.Add(1)
					_ = p.Submit(taskHandler)
				}
			})
		})
	}

	wg.Wait()

	b.StopTimer()
	_ = p.Stop(context.Background(), nil)
}

func BenchmarkAntsBackend(b *testing.B) {
	runtime.GC()

	backend, _ := shardqueue.NewAntsBackend(10000000)

	b.ResetTimer()

	for _, parallelism := range runs {
		b.Run(fmt.Sprintf("%4d", parallelism), func(b *testing.B) {
			b.ReportAllocs()
			b.SetParallelism(parallelism)
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					wg.Add(1)
					_ = backend.Submit(taskHandler)
				}
			})
		})
	}

	wg.Wait()

	b.StopTimer()
	_ = backend.Stop(context.Background())
}

func BenchmarkGammazeroBackend(b *testing.B) {
	runtime.GC()

	backend := shardqueue.NewGammazeroBackend(10000000)

	b.ResetTimer()

	for _, parallelism := range runs {
		b.Run(fmt.Sprintf("%4d", parallelism), func(b *testing.B) {
			b.ReportAllocs()
			b.SetParallelism(parallelism)
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					wg.Add(1)
					_ = backend.Submit(taskHandler)
				}
			})
		})
	}

	wg.Wait()
	b.StopTimer()
	_ = backend.Stop(context.Background())
}

func BenchmarkTunnyBackend(b *testing.B) {
	runtime.GC()

	backend := shardqueue.NewTunnyBackend(runtime.GOMAXPROCS(0))

	b.ResetTimer()

	for _, parallelism := range runs {
		b.Run(fmt.Sprintf("%4d", parallelism), func(b *testing.B) {
			b.ReportAllocs()
			b.SetParallelism(parallelism)
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					wg.Add(1)
					_ = backend.Submit(taskHandler)
				}
			})
		})
	}

	wg.Wait()
	b.StopTimer()
	_ = backend.Stop(context.Background())
}

func BenchmarkPondBackend(b *testing.B) {
	runtime.GC()

	backend := shardqueue.NewPondBackend(10000000, 0)

	b.ResetTimer()

	for _, parallelism := range runs {
		b.Run(fmt.Sprintf("%4d", parallelism), func(b *testing.B) {
			b.ReportAllocs()
			b.SetParallelism(parallelism)
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					wg.Add(1)
					_ = backend.Submit(taskHandler)
				}
			})
		})
	}

	wg.Wait()
	b.StopTimer()
	_ = backend.Stop(context.Background())
}

func BenchmarkGammazeroWorkerpoolDirect(b *testing.B) {
	runtime.GC()

	wp := wp_gammazero.New(10000000)

	b.ResetTimer()

	for _, parallelism := range runs {
		b.Run(fmt.Sprintf("%4d", parallelism), func(b *testing.B) {
			b.ReportAllocs()
			b.SetParallelism(parallelism)
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					wg.Add(1)
					wp.Submit(taskHandler)
				}
			})
		})
	}

	wg.Wait()
	b.StopTimer()
	wp.Stop()
}

func BenchmarkAntsWorkerpoolDirect(b *testing.B) {
	runtime.GC()

	wp, _ := wp_ants.NewPoolWithFunc(10000000, func(interface{}) {
		taskHandler()
	}, wp_ants.WithPreAlloc(false))

	b.ResetTimer()

	for _, parallelism := range runs {
		b.Run(fmt.Sprintf("%4d", parallelism), func(b *testing.B) {
			b.ReportAllocs()
			b.SetParallelism(parallelism)
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					wg.Add(1)
					_ = wp.Invoke(nil)
				}
			})
		})
	}

	wg.Wait()
	b.StopTimer()
	wp.Release()
}

// Encrypts given plain text with AES-128 or AES-256 (depending on the
// length of the key), prepending the IV.
func encryptCBC(plainText, key []byte) (cipherText []byte, err error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	plainText = pad(aes.BlockSize, plainText)

	cipherText = make([]byte, aes.BlockSize+len(plainText))
	iv := cipherText[:aes.BlockSize]
	_, err = io.ReadFull(cryptoRand.Reader, iv)
	if err != nil {
		return nil, err
	}

	mode := cipher.NewCBCEncrypter(block, iv)
	mode.CryptBlocks(cipherText[aes.BlockSize:], plainText)

	return cipherText, nil
}

// Adds PKCS#7 padding (variable block length <= 255 bytes).
func pad(blockSize int, buf []byte) []byte {
	padLen := blockSize - (len(buf) % blockSize)
	padding := bytes.Repeat([]byte{byte(padLen)}, padLen)
	return append(buf, padding...)
}
