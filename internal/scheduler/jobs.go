package scheduler

// Evictor is satisfied by the Enricher's cache sweep.
type Evictor interface {
	Evict() int
}

// CacheEvictionJob periodically sweeps the Enricher's topic cache for
// expired entries, independent of the main cycle's own evict-at-batch-
// start behaviour.
type CacheEvictionJob struct {
	evictor Evictor
}

// NewCacheEvictionJob builds a CacheEvictionJob over evictor.
func NewCacheEvictionJob(evictor Evictor) *CacheEvictionJob {
	return &CacheEvictionJob{evictor: evictor}
}

func (j *CacheEvictionJob) Name() string { return "enricher_cache_eviction" }

func (j *CacheEvictionJob) Run() error {
	j.evictor.Evict()
	return nil
}

// Backer is satisfied by the storage backup service.
type Backer interface {
	Backup() error
}

// BackupJob periodically uploads the persisted AgentState and decision
// log to the configured backup destination.
type BackupJob struct {
	backer Backer
}

// NewBackupJob builds a BackupJob over backer.
func NewBackupJob(backer Backer) *BackupJob {
	return &BackupJob{backer: backer}
}

func (j *BackupJob) Name() string { return "state_backup" }

func (j *BackupJob) Run() error {
	return j.backer.Backup()
}
