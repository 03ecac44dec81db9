package game

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"

	"github.com/decker502/campusxr/pkg/embedded"
	"github.com/panjf2000/ants/v2"
)

// ErrLoaderReleased 加载器已释放后再提交任务时返回
var ErrLoaderReleased = errors.New("asset loader released")

// readChunkSize 单次读取块大小，决定进度回调的粒度
const readChunkSize = 64 * 1024

// Decoder 把原始字节解析为具体资源（在工作协程中执行）
type Decoder func(data []byte) (any, error)

// LoadResult 一次加载的结果
type LoadResult struct {
	Path  string
	Data  []byte
	Value any // Decoder 的返回值，未提供 Decoder 时为 nil
	Err   error
}

// LoadCallback 在帧循环中（Poll 内）调用
type LoadCallback func(result LoadResult)

type completedLoad struct {
	result LoadResult
	done   LoadCallback
}

// AssetLoader 异步资源加载器
//
// 读取与解析在 ants 协程池中进行，结果经由通道交回帧循环：
// 回调只在 Poll 中执行，因此场景状态始终只被帧回调修改。
// 失败的加载只记录日志并通过回调返回错误，不会重试。
type AssetLoader struct {
	pool    *ants.Pool
	results chan completedLoad
	pending atomic.Int32

	mu       sync.Mutex
	progress map[string]float64
	released bool
}

// NewAssetLoader 创建加载器
//
// 参数：
//   - workers: 并发加载的协程数量
func NewAssetLoader(workers int) (*AssetLoader, error) {
	if workers <= 0 {
		workers = 1
	}

	pool, err := ants.NewPool(
		workers,
		ants.WithPreAlloc(true),
		ants.WithPanicHandler(func(p any) {
			log.Printf("[AssetLoader] Worker panic: %v", p)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create loader pool: %w", err)
	}

	return &AssetLoader{
		pool:     pool,
		results:  make(chan completedLoad, 64),
		progress: make(map[string]float64),
	}, nil
}

// Load 提交一次异步加载
//
// 参数：
//   - path: 资源路径（"data/" 前缀读取嵌入数据，其他路径读取磁盘）
//   - decode: 可选的解析函数
//   - done: 完成回调，在下一次 Poll 中调用
func (l *AssetLoader) Load(path string, decode Decoder, done LoadCallback) error {
	l.mu.Lock()
	if l.released {
		l.mu.Unlock()
		return ErrLoaderReleased
	}
	l.progress[path] = 0
	l.mu.Unlock()

	l.pending.Add(1)
	err := l.pool.Submit(func() {
		result := l.run(path, decode)
		l.results <- completedLoad{result: result, done: done}
	})
	if err != nil {
		l.pending.Add(-1)
		return fmt.Errorf("failed to submit load of %s: %w", path, err)
	}

	log.Printf("[AssetLoader] Loading %s", path)
	return nil
}

// run 在工作协程中读取并解析资源
func (l *AssetLoader) run(path string, decode Decoder) (result LoadResult) {
	result.Path = path

	defer func() {
		if p := recover(); p != nil {
			result.Err = fmt.Errorf("panic while loading %s: %v", path, p)
		}
	}()

	data, err := l.read(path)
	if err != nil {
		result.Err = err
		return result
	}
	result.Data = data

	if decode != nil {
		value, err := decode(data)
		if err != nil {
			result.Err = fmt.Errorf("failed to decode %s: %w", path, err)
			return result
		}
		result.Value = value
	}

	return result
}

// read 分块读取文件并更新进度
func (l *AssetLoader) read(path string) ([]byte, error) {
	file, err := embedded.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	var total int64
	if info, err := file.Stat(); err == nil {
		total = info.Size()
	}

	data := make([]byte, 0, total)
	buf := make([]byte, readChunkSize)
	for {
		n, err := file.Read(buf)
		data = append(data, buf[:n]...)
		if total > 0 {
			l.setProgress(path, float64(len(data))/float64(total))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	l.setProgress(path, 1)
	return data, nil
}

func (l *AssetLoader) setProgress(path string, fraction float64) {
	if fraction > 1 {
		fraction = 1
	}
	l.mu.Lock()
	l.progress[path] = fraction
	l.mu.Unlock()
}

// Progress 返回指定资源的加载进度（0~1），未知资源返回 0
func (l *AssetLoader) Progress(path string) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.progress[path]
}

// Pending 返回尚未在 Poll 中交付的加载数量
func (l *AssetLoader) Pending() int {
	return int(l.pending.Load())
}

// Poll 交付所有已完成的加载，必须在帧循环中调用
//
// 返回本次交付的数量。
func (l *AssetLoader) Poll() int {
	delivered := 0
	for {
		select {
		case completed := <-l.results:
			l.pending.Add(-1)
			delivered++
			if completed.result.Err != nil {
				log.Printf("[AssetLoader] Failed to load %s: %v", completed.result.Path, completed.result.Err)
			} else {
				log.Printf("[AssetLoader] Loaded %s (%d bytes)", completed.result.Path, len(completed.result.Data))
			}
			if completed.done != nil {
				completed.done(completed.result)
			}
		default:
			return delivered
		}
	}
}

// Release 释放协程池，之后的 Load 调用返回 ErrLoaderReleased
func (l *AssetLoader) Release() {
	l.mu.Lock()
	if l.released {
		l.mu.Unlock()
		return
	}
	l.released = true
	l.mu.Unlock()

	l.pool.Release()
}
