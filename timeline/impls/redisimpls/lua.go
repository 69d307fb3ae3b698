package redisimpls

import "github.com/go-redis/redis/v8"

var (
	qcPutScript = redis.NewScript(`
		local order = KEYS[1]
		local entry = KEYS[2]

		local entryPre = ARGV[1]
		local member = ARGV[2]
		local value = ARGV[3]
		local ttl = tonumber(ARGV[4])
		local maxEntries = tonumber(ARGV[5])

		redis.call("SET", entry, value, "PX", ttl)

		redis.call("LREM", order, 0, member)
		redis.call("RPUSH", order, member)
		redis.call("PEXPIRE", order, ttl)

		local count = redis.call("LLEN", order)
		while count > maxEntries do
			local oldest = redis.call("LPOP", order)
			if oldest == false then
				break
			end

			redis.call("DEL", entryPre..oldest)
			count = count - 1
		end

		return count
	`)
)
