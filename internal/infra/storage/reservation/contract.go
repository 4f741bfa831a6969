package reservation

import "github.com/MohitSAGAR11/Xperience-Gaming-sub002/pkg/txmanager"

// DBExecutor интерфейс выполнения запросов: *sql.DB или *sql.Tx из контекста
type DBExecutor = txmanager.Executor
