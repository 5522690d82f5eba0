package sqlinline

const QInsertDrive = `--sql 69365bd3-9c87-4b19-a486-cf2baed9d680
insert into drives(title, organization, description, image_url, current_amount, target_amount, status, end_date, gallery)
values ($1, $2, $3, $4, 0, $5, $6, $7, $8)
returning id, title, organization, description, image_url, current_amount, target_amount, status, end_date, gallery, created_at, updated_at;
`

const QSelectDriveByID = `--sql c0fda104-4f3c-4bbc-91f2-4f0ed63b6b67
select id, title, organization, description, image_url, current_amount, target_amount, status, end_date, gallery, created_at, updated_at
from drives
where id = $1;
`

// Status is an exact match; the search term matches title or organization
// case-insensitively. Empty-string arguments disable the corresponding
// filter so one statement serves every listing variant.
const QListDrives = `--sql e2c6f1ae-db0f-4328-ad4a-b2dd5fde5f4e
select id, title, organization, description, image_url, current_amount, target_amount, status, end_date, gallery, created_at, updated_at
from drives
where ($1::text = '' or status = $1::text)
  and ($2::text = '' or title ilike '%' || $2::text || '%' or organization ilike '%' || $2::text || '%')
order by created_at desc
limit $3::int offset $4::int;
`

// Store-level atomic add: concurrent donations to the same drive serialize
// on the row and no increment is lost.
const QIncrementDriveAmount = `--sql a1271750-ab23-47c1-a553-aada292d138a
update drives
set current_amount = current_amount + $2::double precision, updated_at = now()
where id = $1
returning id, title, organization, description, image_url, current_amount, target_amount, status, end_date, gallery, created_at, updated_at;
`
