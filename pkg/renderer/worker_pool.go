package renderer

import (
	"runtime"
	"sync"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile    *Tile
	Samples int          // New samples to add to each pixel of the tile
	TaskID  int          // For deterministic ordering
	Pixels  []PixelStats // Shared row-major pixel buffer to write to
	Width   int          // Row stride of Pixels
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Stats  RenderStats
	Error  error
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual tile rendering tasks
type Worker struct {
	ID          int
	renderer    *TileRenderer
	taskQueue   chan TileTask
	resultQueue chan TileResult
}

// NewWorkerPool creates a worker pool whose queues hold maxTasks tasks without blocking
func NewWorkerPool(renderer *TileRenderer, maxTasks, numWorkers int) *WorkerPool {
	numWorkers = workerCount(numWorkers)

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, maxTasks),
		resultQueue: make(chan TileResult, maxTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			renderer:    renderer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		// Tiles have disjoint bounds, so writes to the shared buffer never overlap
		stats := w.renderer.RenderTileBounds(task.Tile.Bounds, task.Pixels, task.Width, task.Tile.Sampler, task.Samples)

		w.resultQueue <- TileResult{
			TaskID: task.TaskID,
			Stats:  stats,
		}
	}
}

// workerCount resolves a configured worker count, where 0 means one per CPU
func workerCount(numWorkers int) int {
	if numWorkers <= 0 {
		return runtime.NumCPU()
	}
	return numWorkers
}

// renderTiles runs one pass over every tile and waits for all of them to finish
func renderTiles(renderer *TileRenderer, tiles []*Tile, pixels []PixelStats, width, samples, numWorkers int) error {
	pool := NewWorkerPool(renderer, len(tiles), numWorkers)
	pool.Start()
	defer pool.Stop()

	for taskID, tile := range tiles {
		pool.SubmitTask(TileTask{
			Tile:    tile,
			Samples: samples,
			TaskID:  taskID,
			Pixels:  pixels,
			Width:   width,
		})
	}

	for i := 0; i < len(tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			return errWorkerPoolClosed
		}
		if result.Error != nil {
			return result.Error
		}
	}

	return nil
}
